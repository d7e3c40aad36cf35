package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradewind-erp/tradewind/internal/observability"
	"github.com/tradewind-erp/tradewind/internal/reports"
)

// ReportWarmupJob pre-populates the versioned report cache with the
// current summary for every tenant, so the first dashboard hit after a
// cache bump does not pay the aggregation cost.
type ReportWarmupJob struct {
	Reports *reports.Service
	Pool    *pgxpool.Pool
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(reportsSvc *reports.Service, pool *pgxpool.Pool, logger *slog.Logger, metrics *observability.Metrics) *ReportWarmupJob {
	return &ReportWarmupJob{Reports: reportsSvc, Pool: pool, Logger: logger, Metrics: metrics}
}

// Handle processes report warmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	freq := reports.ParseFrequency(payload.Frequency)

	tenants, err := j.tenantIDs(ctx)
	if err != nil {
		j.Logger.Error("load tenants for warmup", slog.Any("error", err))
		j.Metrics.ObserveJob(TaskReportWarmup, "error")
		return err
	}

	warmed := 0
	for _, tenantID := range tenants {
		if _, err := j.Reports.GetSummary(ctx, tenantID, reports.DateRange{}, freq); err != nil {
			j.Logger.Error("warm tenant reports", slog.Int64("tenant", tenantID), slog.Any("error", err))
			j.Metrics.ObserveJob(TaskReportWarmup, "error")
			return err
		}
		warmed++
	}

	j.Logger.Info("report warmup finished", slog.Int("tenants", warmed), slog.String("frequency", string(freq)))
	j.Metrics.ObserveJob(TaskReportWarmup, "ok")
	return nil
}

func (j *ReportWarmupJob) tenantIDs(ctx context.Context) ([]int64, error) {
	rows, err := j.Pool.Query(ctx, "SELECT id FROM tenants ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
