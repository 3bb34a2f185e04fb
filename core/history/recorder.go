package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"opnsense-manager/core/reconcile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultLimit applies when a query does not set one.
const DefaultLimit = 50

// Query filters the ledger.
type Query struct {
	// ObjectType restricts results to one object type when set.
	ObjectType string
	// Limit caps the number of rows, newest first.
	Limit int
}

// Recorder writes reconciliation outcomes to the ledger.
type Recorder struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRecorder creates a recorder on an open connection.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db, now: time.Now}
}

// Migrate creates or updates the ledger table.
func (r *Recorder) Migrate() error {
	if err := r.db.AutoMigrate(&Change{}); err != nil {
		return fmt.Errorf("failed to migrate history: %w", err)
	}
	return nil
}

// Observe implements reconcile.Observer.
func (r *Recorder) Observe(ctx context.Context, o reconcile.Outcome) error {
	if o.Err == nil && (o.Result == nil || !o.Result.Changed) {
		return nil
	}

	change := Change{
		ID:         uuid.NewString(),
		ObjectType: o.ObjectType,
		Check:      o.Check,
		Applied:    o.Applied,
		DurationMS: o.Duration.Milliseconds(),
		CreatedAt:  r.now().UTC(),
	}
	if o.Err != nil {
		change.Error = o.Err.Error()
	}
	if o.Result != nil {
		change.Decision = string(o.Result.Decision)
		change.ObjectUUID = o.Result.Existing.UUID()
		if !o.Result.Diff.Empty() {
			diff, err := json.Marshal(o.Result.Diff)
			if err != nil {
				return fmt.Errorf("failed to encode diff: %w", err)
			}
			change.Diff = string(diff)
		}
	}

	if err := r.db.WithContext(ctx).Create(&change).Error; err != nil {
		return fmt.Errorf("failed to record change: %w", err)
	}
	return nil
}

// Recent returns the newest recorded changes first.
func (r *Recorder) Recent(ctx context.Context, q Query) ([]Change, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	tx := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if q.ObjectType != "" {
		tx = tx.Where("object_type = ?", q.ObjectType)
	}

	var changes []Change
	if err := tx.Find(&changes).Error; err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return changes, nil
}
