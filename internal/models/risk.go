package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RiskAssessment is the score computed for one ingest. Reasons is a JSON array
// of strings in the order they were added.
type RiskAssessment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"-"`
	OrgID     string         `gorm:"type:varchar(128);not null;index:idx_risks_org_created,priority:1" json:"-"`
	IngestID  uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"ingest_id"`
	Score     int            `gorm:"not null" json:"score" validate:"gte=0,lte=100"`
	Level     string         `gorm:"type:varchar(16);not null" json:"level" validate:"oneof=LOW MEDIUM HIGH"`
	Reasons   datatypes.JSON `json:"reasons"`
	CreatedAt time.Time      `gorm:"not null;index:idx_risks_org_created,priority:2" json:"time"`
}

func (RiskAssessment) TableName() string { return "risk_assessments" }

func (m *RiskAssessment) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}

// SetReasons stores reasons as a JSON array; nil is stored as [].
func (m *RiskAssessment) SetReasons(reasons []string) error {
	if reasons == nil {
		reasons = []string{}
	}
	b, err := json.Marshal(reasons)
	if err != nil {
		return err
	}
	m.Reasons = datatypes.JSON(b)
	return nil
}

// ReasonList decodes Reasons.
func (m *RiskAssessment) ReasonList() ([]string, error) {
	out := []string{}
	if len(m.Reasons) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(m.Reasons, &out); err != nil {
		return nil, err
	}
	return out, nil
}
