package models

import (
	"time"

	"github.com/google/uuid"
)

// InteractionType is the contact channel used for an interaction.
type InteractionType string

const (
	TypeCall     InteractionType = "call"
	TypeWhatsApp InteractionType = "wa"
	TypeSMS      InteractionType = "sms"
	TypeVisit    InteractionType = "visit"
	TypeEmail    InteractionType = "email"
)

// Disposition is the outcome of an interaction.
type Disposition string

const (
	DispositionSuccess  Disposition = "success"
	DispositionCallback Disposition = "callback"
	DispositionRefusal  Disposition = "refusal"
	DispositionPending  Disposition = "pending"
)

// Interaction is an immutable log record of a client contact. Interactions
// are created once and never mutated or deleted.
type Interaction struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID       uuid.UUID       `gorm:"type:uuid;column:client_id;index;not null" json:"client_id"`
	AgentID        uuid.UUID       `gorm:"type:uuid;column:agent_id;not null" json:"agent_id"`
	Type           InteractionType `gorm:"column:type;not null" json:"type"`
	Disposition    Disposition     `gorm:"column:disposition;not null" json:"disposition"`
	SentimentNum   float64         `gorm:"column:sentiment_num" json:"sentiment_num"`
	PromisedAmount *float64        `gorm:"column:promised_amount" json:"promised_amount,omitempty"`
	NextActionDate *time.Time      `gorm:"column:next_action_date" json:"next_action_date,omitempty"`
	Notes          string          `gorm:"column:notes" json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (Interaction) TableName() string {
	return "interactions"
}

// InteractionCreateRequest is the payload for logging an interaction against
// a client. A missing agent is a validation error and never reaches the store.
type InteractionCreateRequest struct {
	AgentID        uuid.UUID       `json:"agent_id" validate:"required"`
	Type           InteractionType `json:"type" validate:"required,oneof=call wa sms visit email"`
	Disposition    Disposition     `json:"disposition" validate:"required,oneof=success callback refusal pending"`
	SentimentNum   float64         `json:"sentiment_num" validate:"min=-1,max=1"`
	PromisedAmount *float64        `json:"promised_amount" validate:"omitempty,min=0"`
	NextActionDate *time.Time      `json:"next_action_date"`
	Notes          string          `json:"notes"`
}

// InteractionResult is returned after an interaction is logged: the stored
// record plus the client state it produced.
type InteractionResult struct {
	Interaction Interaction `json:"interaction"`
	Client      Client      `json:"client"`
	TierChanged bool        `json:"tier_changed"`
}
