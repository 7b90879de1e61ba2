package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingest is one raw status update as it was received.
type Ingest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID     string    `gorm:"type:varchar(128);not null;index:idx_ingests_org_created,priority:1" json:"org_id" validate:"required"`
	Source    string    `gorm:"type:varchar(255);not null" json:"source"`
	Text      string    `gorm:"type:text;not null" json:"text" validate:"required"`
	Checksum  string    `gorm:"type:varchar(64);index" json:"checksum"`
	CreatedAt time.Time `gorm:"not null;index:idx_ingests_org_created,priority:2" json:"time"`
}

func (m *Ingest) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}

// assignID fills a zero primary key. IDs are generated here rather than by the
// database so that every supported engine produces the same values.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
