package repository

import (
	"context"

	"joinwork/internal/middleware"
	"joinwork/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Logical collection names for the counter allocator.
const (
	CollectionUsers        = "users"
	CollectionGraduates    = "graduates"
	CollectionCompanies    = "companies"
	CollectionJobs         = "jobs"
	CollectionApplications = "applications"
	CollectionWorkshops    = "workshops"
)

// CounterRepository issues unique, monotonically increasing ids per logical
// collection. The read-increment-write must be atomic with respect to
// concurrent callers targeting the same collection.
type CounterRepository interface {
	Next(ctx context.Context, collection string) (int64, error)
}

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository returns a CounterRepository backed by the counters table.
func NewCounterRepository(db *gorm.DB) CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) Next(ctx context.Context, collection string) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Auto-initialize missing collections to 0.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Counter{Collection: collection, Value: 0}).Error; err != nil {
			return err
		}
		// Single-statement increment keeps the issue atomic on both
		// Postgres and SQLite.
		return tx.Raw(
			"UPDATE counters SET value = value + 1 WHERE collection = ? RETURNING value",
			collection,
		).Scan(&next).Error
	})
	if err != nil {
		return 0, storeError(err)
	}
	middleware.IDsIssued.WithLabelValues(collection).Inc()
	return next, nil
}
