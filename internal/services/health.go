package services

import (
	"context"
	"log"

	"gorm.io/gorm"

	"seatrade/internal/database"
)

// HealthResult reports service liveness.
type HealthResult struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
}

// HealthService implements the health service
type HealthService struct {
	db *gorm.DB
}

// NewHealthService creates a new health service
func NewHealthService(db *gorm.DB) *HealthService {
	return &HealthService{db: db}
}

// Check implements the health check method. A failing database degrades the result
// instead of returning an error.
func (s *HealthService) Check(ctx context.Context) (*HealthResult, error) {
	result := &HealthResult{
		Status:   "healthy",
		Service:  "Seatrade API",
		Database: "ok",
	}
	if err := database.HealthCheck(s.db); err != nil {
		log.Printf("[HEALTH] Database check failed: %v", err)
		result.Status = "degraded"
		result.Database = "unavailable"
		return result, nil
	}
	database.RecordPoolStats(s.db)
	return result, nil
}
