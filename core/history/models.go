package history

import "time"

// Change is one recorded reconciliation.
type Change struct {
	ID         string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	ObjectType string    `gorm:"column:object_type;size:64;index" json:"object_type"`
	ObjectUUID string    `gorm:"column:object_uuid;size:64" json:"object_uuid,omitempty"`
	Decision   string    `gorm:"column:decision;size:16" json:"decision"`
	Check      bool      `gorm:"column:check_mode" json:"check"`
	Applied    bool      `gorm:"column:applied" json:"applied"`
	Diff       string    `gorm:"column:diff;type:text" json:"diff,omitempty"`
	Error      string    `gorm:"column:error;type:text" json:"error,omitempty"`
	DurationMS int64     `gorm:"column:duration_ms" json:"duration_ms"`
	CreatedAt  time.Time `gorm:"column:created_at;index" json:"created_at"`
}

// TableName overrides the table name.
func (Change) TableName() string {
	return "reconcile_changes"
}
