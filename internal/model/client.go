package model

import "time"

// ClientStatus is the lifecycle status of a client. The set is closed: writes
// with any other value fail validation.
type ClientStatus string

const (
	ClientActive    ClientStatus = "active"
	ClientPending   ClientStatus = "pending"
	ClientCompleted ClientStatus = "completed"
	ClientInactive  ClientStatus = "inactive"
)

// Valid reports whether s belongs to the declared status set.
func (s ClientStatus) Valid() bool {
	switch s {
	case ClientActive, ClientPending, ClientCompleted, ClientInactive:
		return true
	}
	return false
}

// Client is a mortgage client owned by exactly one broker.
type Client struct {
	ID        string       `json:"id"`
	BrokerID  string       `json:"broker_id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Address   string       `json:"address"`
	Status    ClientStatus `json:"status"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
