package model

import "time"

// ReminderType classifies what the reminder is about.
type ReminderType string

const (
	ReminderCall     ReminderType = "call"
	ReminderMeeting  ReminderType = "meeting"
	ReminderDocument ReminderType = "document"
	ReminderFollowUp ReminderType = "follow_up"
)

// Valid reports whether t belongs to the declared type set.
func (t ReminderType) Valid() bool {
	switch t {
	case ReminderCall, ReminderMeeting, ReminderDocument, ReminderFollowUp:
		return true
	}
	return false
}

// Reminder is a dated prompt for the broker, optionally tied to a client
// and/or application.
type Reminder struct {
	ID            string       `json:"id"`
	BrokerID      string       `json:"broker_id"`
	ClientID      *string      `json:"client_id,omitempty"`
	ApplicationID *string      `json:"application_id,omitempty"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	DueDate       time.Time    `json:"due_date"`
	ReminderType  ReminderType `json:"reminder_type"`
	IsCompleted   bool         `json:"is_completed"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
