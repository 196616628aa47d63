package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/nutriscan/internal/common"
)

// HealthService backs the health endpoint and the Ping RPC.
type HealthService struct {
	db *sql.DB
}

func NewHealthService(db *sql.DB) *HealthService {
	return &HealthService{db: db}
}

// Ping reports whether the database is reachable.
func (s *HealthService) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}
	return nil
}
