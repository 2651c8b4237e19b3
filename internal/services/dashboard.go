package services

import "integration-hub/internal/models"

// StatusCounts maps every integration status to its row count.
type StatusCounts map[string]int64

// Total sums all statuses.
func (c StatusCounts) Total() int64 {
	var n int64
	for _, v := range c {
		n += v
	}
	return n
}

type DashboardService struct{}

func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

// CountByStatus aggregates integrations by status. Every known status is
// present in the result; ownerID 0 counts all integrations.
func (s *DashboardService) CountByStatus(ownerID uint) (StatusCounts, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	q := models.DB.Model(&models.ApiIntegration{}).Select("status, COUNT(*) AS count").Group("status")
	if ownerID != 0 {
		q = q.Where("owner_id = ?", ownerID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := StatusCounts{}
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for _, r := range rows {
		counts[r.Status] += r.Count
	}
	return counts, nil
}
