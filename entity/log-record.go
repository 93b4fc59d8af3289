package entity

import "time"

// LogRecord is the information about a logging event.
type LogRecord struct {
	Msg   string `json:"msg"`
	Level Level  `json:"level"`
	// Name of the logger (logging channel).
	Name string `json:"name"`
	// Created is the time the record was created. The zero value means unknown.
	Created time.Time `json:"created"`
}
