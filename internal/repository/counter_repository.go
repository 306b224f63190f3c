package repository

import (
	"fmt"

	"github.com/aitoolhub/backend/internal/apperr"
	"github.com/aitoolhub/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CounterRepository issues unique monotonically increasing IDs per namespace.
type CounterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Next atomically increments the counter for namespace and returns the new
// value. A fresh namespace starts at 1. The whole operation is one upsert
// statement, so concurrent callers (including callers in other processes)
// can never observe the same value:
//
//	INSERT INTO counters (namespace, seq) VALUES (?, 1)
//	ON CONFLICT (namespace) DO UPDATE SET seq = seq + 1
//	RETURNING seq
func (r *CounterRepository) Next(namespace string) (int64, error) {
	counter := models.Counter{Namespace: namespace, Seq: 1}

	err := r.db.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"seq": gorm.Expr("seq + 1")}),
		},
		clause.Returning{},
	).Create(&counter).Error
	if err != nil {
		return 0, fmt.Errorf("allocate id for %q: %w: %v", namespace, apperr.ErrStoreUnavailable, err)
	}

	return counter.Seq, nil
}
