package dto

import "urban-assistant-be/pkg/urbanapi"

type QuestionRequest struct {
	QuestionBody      string                 `json:"question_body" validate:"required,max=4000"`
	ChunkNum          int                    `json:"chunk_num" validate:"gte=0,lte=20"`
	TerritoryNameId   urbanapi.NameOrID      `json:"territory_name_id"`
	TerritoryType     urbanapi.TerritoryType `json:"territory_type" validate:"omitempty,oneof=city district municipality block"`
	UserSelectionZone any                    `json:"user_selection_zone"`
}

func (r QuestionRequest) Territory() urbanapi.Territory {
	return urbanapi.Territory{
		Type:        r.TerritoryType,
		NameID:      r.TerritoryNameId,
		Coordinates: r.UserSelectionZone,
	}
}

type QuestionResponse struct {
	LlmRes      string   `json:"llm_res"`
	Pipeline    string   `json:"pipeline"`
	Functions   []string `json:"functions"`
	ContextList []string `json:"context_list"`
	Logs        []string `json:"logs"`
}
