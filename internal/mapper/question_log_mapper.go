package mapper

import (
	"encoding/json"

	"urban-assistant-be/internal/entity"
	"urban-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type QuestionLogMapper struct{}

func NewQuestionLogMapper() *QuestionLogMapper {
	return &QuestionLogMapper{}
}

func (m *QuestionLogMapper) ToEntity(q *model.QuestionLog) *entity.QuestionLog {
	if q == nil {
		return nil
	}

	var actions []string
	if len(q.Actions) > 0 {
		_ = json.Unmarshal(q.Actions, &actions)
	}

	return &entity.QuestionLog{
		Id:              q.Id,
		CorrelationId:   q.CorrelationId,
		Question:        q.Question,
		TerritoryType:   q.TerritoryType,
		TerritoryNameId: q.TerritoryNameId,
		Pipeline:        q.Pipeline,
		Actions:         actions,
		Answer:          q.Answer,
		Error:           q.Error,
		LatencyMs:       q.LatencyMs,
		CreatedAt:       q.CreatedAt,
	}
}

func (m *QuestionLogMapper) ToModel(q *entity.QuestionLog) *model.QuestionLog {
	if q == nil {
		return nil
	}

	actions := q.Actions
	if actions == nil {
		actions = []string{}
	}
	raw, _ := json.Marshal(actions)

	return &model.QuestionLog{
		Id:              q.Id,
		CorrelationId:   q.CorrelationId,
		Question:        q.Question,
		TerritoryType:   q.TerritoryType,
		TerritoryNameId: q.TerritoryNameId,
		Pipeline:        q.Pipeline,
		Actions:         datatypes.JSON(raw),
		Answer:          q.Answer,
		Error:           q.Error,
		LatencyMs:       q.LatencyMs,
		CreatedAt:       q.CreatedAt,
	}
}
