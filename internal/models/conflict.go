package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conflict records that an update contradicted the current value of a truth.
// Position orders the conflicts raised by one ingest.
type Conflict struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID     string    `gorm:"type:varchar(128);not null;index:idx_conflicts_org_created,priority:1" json:"org_id"`
	IngestID  uuid.UUID `gorm:"type:uuid;index;not null" json:"ingest_id"`
	Position  int       `gorm:"not null" json:"-"`
	Key       string    `gorm:"type:varchar(64);not null" json:"key"`
	OldValue  string    `gorm:"type:text" json:"old_value"`
	NewValue  string    `gorm:"type:text" json:"new_value"`
	Question  string    `gorm:"type:text" json:"question"`
	CreatedAt time.Time `gorm:"not null;index:idx_conflicts_org_created,priority:2" json:"time"`
}

func (m *Conflict) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}
