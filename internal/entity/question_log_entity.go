package entity

import (
	"time"

	"github.com/google/uuid"
)

type QuestionLog struct {
	Id              uuid.UUID
	CorrelationId   string
	Question        string
	TerritoryType   string
	TerritoryNameId string
	Pipeline        string
	Actions         []string
	Answer          string
	Error           *string
	LatencyMs       int64
	CreatedAt       time.Time
}
