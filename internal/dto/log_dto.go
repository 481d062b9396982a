package dto

import "time"

// Log ids are MD5 hashes of the raw line, not UUIDs

type LogListResponse struct {
	Id            string `json:"id"`
	Timestamp     string `json:"timestamp"`
	Level         string `json:"level"`
	Module        string `json:"module"`
	Message       string `json:"message"`
	CorrelationId string `json:"correlation_id,omitempty"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}

type QuestionLogResponse struct {
	Id              string    `json:"id"`
	CorrelationId   string    `json:"correlation_id"`
	Question        string    `json:"question"`
	TerritoryType   string    `json:"territory_type"`
	TerritoryNameId string    `json:"territory_name_id"`
	Pipeline        string    `json:"pipeline"`
	Actions         []string  `json:"actions"`
	Answer          string    `json:"answer"`
	Error           *string   `json:"error,omitempty"`
	LatencyMs       int64     `json:"latency_ms"`
	CreatedAt       time.Time `json:"created_at"`
	Logs            []string  `json:"logs,omitempty"`
}
