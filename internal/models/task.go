package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is an action item drafted from one ingest. Position keeps extraction order.
type Task struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	OrgID      string    `gorm:"type:varchar(128);not null;index" json:"-"`
	IngestID   uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_ingest_position,priority:1" json:"ingest_id"`
	Position   int       `gorm:"not null;index:idx_tasks_ingest_position,priority:2" json:"-"`
	Label      string    `gorm:"type:varchar(255);not null" json:"task"`
	Owner      *string   `gorm:"type:varchar(255)" json:"owner"`
	Status     *string   `gorm:"type:varchar(32)" json:"status"`
	Deadline   *string   `gorm:"type:varchar(64)" json:"deadline"`
	Dependency *string   `gorm:"type:text" json:"dependency"`
	CreatedAt  time.Time `gorm:"not null" json:"time"`
}

func (m *Task) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}
