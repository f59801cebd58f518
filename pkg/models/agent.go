package models

import (
	"time"

	"github.com/google/uuid"
)

// AgentRole is an agent's position in the sales hierarchy.
type AgentRole string

const (
	RoleAgent       AgentRole = "agent"
	RoleSeniorAgent AgentRole = "senior_agent"
	RoleTeamLead    AgentRole = "team_lead"
	RoleHOD         AgentRole = "hod"
	RoleManager     AgentRole = "manager"
	RoleAdmin       AgentRole = "admin"
)

// Agent is a sales agent who logs client interactions.
type Agent struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Role              AgentRole `gorm:"column:role;default:agent" json:"role"`
	Phone             string    `gorm:"column:phone" json:"phone"`
	Email             string    `gorm:"column:email" json:"email"`
	Department        string    `gorm:"column:department" json:"department"`
	PerformanceRating string    `gorm:"column:performance_rating;default:Good" json:"performance_rating"`
	Active            bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Agent) TableName() string {
	return "agents"
}

// AgentCreateRequest is the payload for creating an agent.
type AgentCreateRequest struct {
	Name              string    `json:"name" validate:"required"`
	Role              AgentRole `json:"role" validate:"omitempty,oneof=agent senior_agent team_lead hod manager admin"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email" validate:"required,email"`
	Department        string    `json:"department"`
	PerformanceRating string    `json:"performance_rating" validate:"omitempty,oneof=Excellent Good Average 'Needs Improvement'"`
	Active            *bool     `json:"active"`
}

// AgentUpdateRequest is the payload for updating an agent.
type AgentUpdateRequest struct {
	Name              *string    `json:"name"`
	Role              *AgentRole `json:"role" validate:"omitempty,oneof=agent senior_agent team_lead hod manager admin"`
	Phone             *string    `json:"phone"`
	Email             *string    `json:"email" validate:"omitempty,email"`
	Department        *string    `json:"department"`
	PerformanceRating *string    `json:"performance_rating" validate:"omitempty,oneof=Excellent Good Average 'Needs Improvement'"`
	Active            *bool      `json:"active"`
}
