package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"seatrade/internal/metrics"
)

const queryStartKey = "metrics:query_start"

// registerMetrics times every create, query, update and delete issued through db.
func registerMetrics(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("metrics:before_create", startTimer); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:after_create", observe("create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("metrics:before_query", startTimer); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:after_query", observe("query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:before_update", startTimer); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:after_update", observe("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:before_delete", startTimer); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("metrics:after_delete", observe("delete"))
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func observe(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		err := db.Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = nil
		}
		metrics.RecordDBQuery(operation, time.Since(start), err)
	}
}

// RecordPoolStats publishes the connection pool gauges.
func RecordPoolStats(db *gorm.DB) {
	stats, err := GetStats(db)
	if err != nil {
		return
	}
	metrics.UpdateDBConnections(stats.InUse, stats.Idle)
}
