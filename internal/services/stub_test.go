package services

import (
	"errors"
	"os"
	"testing"

	"integration-hub/internal/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubGeneratorWritesOnce(t *testing.T) {
	fs := afero.NewMemMapFs()
	gen := NewStubGenerator(fs, "data/stubs")
	integration := &models.ApiIntegration{ID: 7, Name: "Payments\nAPI", EndpointPath: "charges", HTTPMethod: "put"}

	path, created, err := gen.Generate(integration)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, gen.Path(7), path)

	body, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "package stubs")
	assert.Contains(t, string(body), `r.Handle("PUT", "/charges", handleIntegration7)`)
	assert.Contains(t, string(body), "integration Payments API (ID: 7)")

	// A second run must not clobber local edits.
	require.NoError(t, afero.WriteFile(fs, path, []byte("edited"), 0644))
	again, created, err := gen.Generate(&models.ApiIntegration{ID: 7, Name: "Renamed"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, path, again)

	body, err = afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "edited", string(body))
}

func TestStubGeneratorRequiresSavedIntegration(t *testing.T) {
	gen := NewStubGenerator(afero.NewMemMapFs(), "stubs")
	_, _, err := gen.Generate(&models.ApiIntegration{Name: "unsaved"})
	assert.Error(t, err)
	assert.False(t, gen.Exists(0))
}

func TestStubGeneratorReadOnlyFs(t *testing.T) {
	gen := NewStubGenerator(afero.NewReadOnlyFs(afero.NewMemMapFs()), "stubs")
	_, created, err := gen.Generate(&models.ApiIntegration{ID: 1, Name: "x"})
	assert.Error(t, err)
	assert.False(t, created)
}

// flakyWriteFs fails the first n file writes, as a full disk would.
type flakyWriteFs struct {
	afero.Fs
	failures int
}

func (f *flakyWriteFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil || f.failures == 0 {
		return file, err
	}
	f.failures--
	return failingWriteFile{file}, nil
}

type failingWriteFile struct {
	afero.File
}

func (failingWriteFile) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestStubGeneratorRetriesAfterFailedWrite(t *testing.T) {
	fs := &flakyWriteFs{Fs: afero.NewMemMapFs(), failures: 1}
	gen := NewStubGenerator(fs, "stubs")
	integration := &models.ApiIntegration{ID: 3, Name: "Ledger", EndpointPath: "/entries", HTTPMethod: "GET"}

	_, created, err := gen.Generate(integration)
	require.Error(t, err)
	assert.False(t, created)
	assert.False(t, gen.Exists(3), "failed write must not leave a file behind")

	path, created, err := gen.Generate(integration)
	require.NoError(t, err)
	assert.True(t, created)

	body, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `r.Handle("GET", "/entries", handleIntegration3)`)
}
