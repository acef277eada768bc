package audit

import (
	"context"
	"encoding/json"
	"time"
)

// Log is an append-only before/after snapshot of a state-changing operation.
// Every mutation in the engine records one, inside the same transaction.
type Log struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	ActorID    string    `gorm:"column:actor_id;type:char(32)" json:"actor_id"`
	Action     string    `gorm:"column:action;type:varchar(64);not null;index:idx_audit_action" json:"action"`
	EntityType string    `gorm:"column:entity_type;type:varchar(64)" json:"entity_type"`
	EntityID   string    `gorm:"column:entity_id;type:char(32);index:idx_audit_entity" json:"entity_id"`
	Before     []byte    `gorm:"column:before;type:json" json:"before,omitempty"`
	After      []byte    `gorm:"column:after;type:json" json:"after,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Log) TableName() string { return "audit_logs" }

// Recorder is the audit sink. Implementations must be durable and ordered
// per entity; callers treat failures as transaction failures.
type Recorder interface {
	Record(ctx context.Context, l *Log) error
}

// Snapshot marshals an entity for the before/after columns. A nil input
// stays nil so the column reads as SQL NULL.
func Snapshot(v any) []byte {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
