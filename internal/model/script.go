package model

import "time"

// ScriptType classifies an interview script by call stage.
type ScriptType string

const (
	ScriptInitialCall ScriptType = "initial_call"
	ScriptFollowUp    ScriptType = "follow_up"
	ScriptClosing     ScriptType = "closing"
)

// Valid reports whether t belongs to the declared type set.
func (t ScriptType) Valid() bool {
	switch t {
	case ScriptInitialCall, ScriptFollowUp, ScriptClosing:
		return true
	}
	return false
}

// ScriptSection is a reusable block of call-guide content. Sections are shared:
// many scripts may reference the same section. OrderIndex defines presentation
// order within a script; ties resolve by insertion order.
type ScriptSection struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"duration_seconds"`
	Content         string `json:"content"`
	OrderIndex      int    `json:"order"`
	KeyNotes        string `json:"key_notes,omitempty"`
}

// InterviewScript is a scripted call guide assembled from ordered sections.
type InterviewScript struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ScriptType    ScriptType      `json:"script_type"`
	Version       string          `json:"version"`
	IsActive      bool            `json:"is_active"`
	TotalDuration int             `json:"total_duration"`
	GeneralNotes  string          `json:"general_notes,omitempty"`
	Sections      []ScriptSection `json:"sections"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
