package utils

import (
	"context"
	"edu/database"
	"edu/logger"
	"edu/ordering"

	"github.com/robfig/cron/v3"
)

// InitializeOrderAuditScheduler runs the sibling order audit on the given cron
// schedule. The returned cron is already started.
func InitializeOrderAuditScheduler(schedule string) (*cron.Cron, error) {
	logger.Log.Info("[ORDER-AUDIT] Initializing order audit scheduler", "schedule", schedule)

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if _, err := RunOrderAudit(context.Background()); err != nil {
			logger.Log.Error("[ORDER-AUDIT] Audit failed", "error", err)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	logger.Log.Info("[ORDER-AUDIT] Order audit scheduler started")
	return c, nil
}

// RunOrderAudit reports every group holding siblings that share an order.
// Explicit orders may collide, so duplicates are logged and never rewritten.
func RunOrderAudit(ctx context.Context) ([]ordering.Duplicate, error) {
	duplicates, err := ordering.FindDuplicates(ctx, database.Database.Db, database.Database.Ordering)
	if err != nil {
		return nil, err
	}

	for _, d := range duplicates {
		logger.Log.Warn("[ORDER-AUDIT] Siblings share an order",
			"table", d.Table, "group", d.Group, "order", d.Order, "count", d.Count)
	}
	logger.Log.Info("[ORDER-AUDIT] Audit complete", "duplicates", len(duplicates))
	return duplicates, nil
}
