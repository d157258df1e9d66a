// FILE: vislog/src/internal/core/entry.go
package core

import (
	"time"
)

// Record is a single parsed broker log record
type Record struct {
	PID       uint64    `json:"pid"`
	Time      time.Time `json:"time"`
	TID       uint64    `json:"tid"`
	Logger    string    `json:"logger"`
	Component string    `json:"component"`
	File      string    `json:"file"`
	Line      uint64    `json:"line"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
}
