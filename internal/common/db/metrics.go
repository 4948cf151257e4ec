package db

import (
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/adilbekov/notekeeper/internal/observability/metrics"
)

// StartPoolMetrics publishes pool stats until the process exits.
func StartPoolMetrics(pool *pgxpool.Pool, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			stat := pool.Stat()
			metrics.DBPoolTotalConns.Set(float64(stat.TotalConns()))
			metrics.DBPoolIdleConns.Set(float64(stat.IdleConns()))
			metrics.DBPoolAcquiredConns.Set(float64(stat.AcquiredConns()))
		}
	}()
}
