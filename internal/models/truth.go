package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Truth is one version of a keyed fact. Rows are append-only; the current
// value of a key is the row with the highest version.
type Truth struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID     string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_truths_org_key_version,priority:1" json:"org_id"`
	Key       string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_truths_org_key_version,priority:2" json:"key"`
	Version   int       `gorm:"not null;uniqueIndex:idx_truths_org_key_version,priority:3" json:"version" validate:"gte=1"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	IngestID  uuid.UUID `gorm:"type:uuid;index;not null" json:"ingest_id"`
	CreatedAt time.Time `gorm:"not null" json:"time"`
}

func (m *Truth) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}
