package utils

import (
	"encoding/json"
	"log"
	"time"
)

// LogFields is one structured event line.
type LogFields struct {
	Component   string `json:"component"`
	Step        string `json:"step,omitempty"`
	Status      string `json:"status,omitempty"`
	UserID      uint   `json:"user_id,omitempty"`
	OrderNumber string `json:"order_number,omitempty"`
	DurationMS  int64  `json:"duration_ms,omitempty"`
	Message     string `json:"message,omitempty"`
}

// LogEvent writes fields as a single JSON line through the standard logger.
func LogEvent(fields LogFields) {
	payload := map[string]any{
		"component":    fields.Component,
		"step":         fields.Step,
		"status":       fields.Status,
		"user_id":      fields.UserID,
		"order_number": fields.OrderNumber,
		"duration_ms":  fields.DurationMS,
		"message":      fields.Message,
		"timestamp":    time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("{\"component\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Component, err.Error())
		return
	}
	log.Print(string(data))
}
