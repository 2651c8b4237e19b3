package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"integration-hub/internal/api/routes"
	"integration-hub/internal/config"
	"integration-hub/internal/logging"
	"integration-hub/internal/models"
	"integration-hub/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type rootOptions struct {
	configPath string
	envFile    string
}

func rootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "integration-hub",
		Short: "API integration hub",
		Long:  "Tracks API integrations with role-based dashboards for admins, API admins, developers and operators.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "configs/config.yaml", "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the config")

	cmd.AddCommand(serveCommand(opts), migrateCommand(opts), resetPasswordCommand(opts))
	return cmd
}

func serveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func migrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables, seed roles and the default admin, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer models.Close()

			if err := services.NewAuthService(cfg).CreateDefaultUser(); err != nil {
				return fmt.Errorf("failed to create default user: %w", err)
			}
			logger.Info("database migrated")
			return nil
		},
	}
}

func resetPasswordCommand(opts *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 8 {
				return errors.New("password must be at least 8 characters")
			}
			cfg, logger, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer models.Close()

			if err := services.NewAuthService(cfg).ResetPassword(email, password); err != nil {
				return err
			}
			logger.Info("password reset", zap.String("email", services.NormalizeEmail(email)))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// bootstrap loads configuration, builds the logger and opens the database.
func bootstrap(opts *rootOptions) (*config.Config, *zap.Logger, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Server.Production(), cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := models.InitDB(cfg); err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, logger, nil
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, logger, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer models.Close()

	authService := services.NewAuthService(cfg)
	if err := authService.CreateDefaultUser(); err != nil {
		logger.Warn("failed to create default user", zap.Error(err))
	}
	if purged, err := authService.DeleteExpiredSessions(); err != nil {
		logger.Warn("failed to purge expired sessions", zap.Error(err))
	} else if purged > 0 {
		logger.Info("purged expired sessions", zap.Int64("count", purged))
	}

	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	if err := routes.SetupRoutes(r, cfg, logger, afero.NewOsFs()); err != nil {
		return fmt.Errorf("failed to set up routes: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Server.Env),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
