package database

import (
	"time"

	"agora/internal/observability"

	"gorm.io/gorm"
)

const metricsStartKey = "metrics:query_start"

// registerMetricsCallbacks wires every GORM operation into the Prometheus
// query-latency histogram, labeled by operation and table.
func registerMetricsCallbacks(db *gorm.DB) error {
	type hook struct {
		kind   string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
	}

	hooks := []hook{
		{"create", db.Callback().Create().Before("gorm:create").Register, db.Callback().Create().After("gorm:create").Register},
		{"query", db.Callback().Query().Before("gorm:query").Register, db.Callback().Query().After("gorm:query").Register},
		{"update", db.Callback().Update().Before("gorm:update").Register, db.Callback().Update().After("gorm:update").Register},
		{"delete", db.Callback().Delete().Before("gorm:delete").Register, db.Callback().Delete().After("gorm:delete").Register},
		{"raw", db.Callback().Raw().Before("gorm:raw").Register, db.Callback().Raw().After("gorm:raw").Register},
		{"row", db.Callback().Row().Before("gorm:row").Register, db.Callback().Row().After("gorm:row").Register},
	}

	for _, h := range hooks {
		operation := h.kind
		if err := h.before("metrics:before_"+operation, func(tx *gorm.DB) {
			tx.InstanceSet(metricsStartKey, time.Now())
		}); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+operation, func(tx *gorm.DB) {
			began, ok := tx.InstanceGet(metricsStartKey)
			if !ok {
				return
			}
			start, ok := began.(time.Time)
			if !ok {
				return
			}
			table := tx.Statement.Table
			if table == "" {
				table = "raw"
			}
			observability.ObserveQuery(operation, table, start)
		}); err != nil {
			return err
		}
	}

	return nil
}
