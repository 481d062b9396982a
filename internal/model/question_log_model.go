package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuestionLog struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CorrelationId   string         `gorm:"type:varchar(64);not null;index"`
	Question        string         `gorm:"type:text;not null"`
	TerritoryType   string         `gorm:"type:varchar(20)"`
	TerritoryNameId string         `gorm:"type:varchar(255)"`
	Pipeline        string         `gorm:"type:varchar(64);index"`
	Actions         datatypes.JSON `gorm:"type:jsonb"`
	Answer          string         `gorm:"type:text"`
	Error           *string        `gorm:"type:text"`
	LatencyMs       int64          `gorm:"not null;default:0"`
	CreatedAt       time.Time      `gorm:"default:now();not null;index"`
}

func (QuestionLog) TableName() string {
	return "question_logs"
}
