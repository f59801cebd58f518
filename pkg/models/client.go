package models

import (
	"time"

	"github.com/google/uuid"
)

// Tier is the coarse health bucket derived from the health score.
type Tier string

const (
	TierGreen Tier = "Green"
	TierAmber Tier = "Amber"
	TierRed   Tier = "Red"
)

// PromiseFunnel tracks the lifecycle of a sales promise.
type PromiseFunnel string

const (
	FunnelPending  PromiseFunnel = "pending"
	FunnelPromised PromiseFunnel = "promised"
	FunnelKept     PromiseFunnel = "kept"
	FunnelPartial  PromiseFunnel = "partial"
	FunnelBroken   PromiseFunnel = "broken"
)

// Sectors lists the named zones a client plot can belong to. The request
// validate tags enumerate the same values; keep them in sync.
var Sectors = []string{
	"B1", "Tulip 1", "Tulip 2", "C Extension",
	"Tulip 2 Extension", "Burj Block", "Burj Boulevard",
}

// Scores holds the five CRFES sub-scores, each in [0,100].
type Scores struct {
	Contactability int `gorm:"column:contactability;not null" json:"contactability" validate:"min=0,max=100"`
	Responsiveness int `gorm:"column:responsiveness;not null" json:"responsiveness" validate:"min=0,max=100"`
	Financial      int `gorm:"column:financial;not null" json:"financial" validate:"min=0,max=100"`
	Engagement     int `gorm:"column:engagement;not null" json:"engagement" validate:"min=0,max=100"`
	Sentiment      int `gorm:"column:sentiment;not null" json:"sentiment" validate:"min=0,max=100"`
}

// Client is a tracked real-estate sales lead.
//
// HealthScore and Tier are derived columns: every code path that persists a
// client recomputes them from Scores first, so a stored row is always
// consistent with the scoring formula.
type Client struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string        `gorm:"not null" json:"name"`
	Phone           string        `gorm:"column:phone" json:"phone"`
	Email           string        `gorm:"column:email" json:"email"`
	Sector          string        `gorm:"column:sector" json:"sector"`
	Category        string        `gorm:"column:category" json:"category"`
	Plot            string        `gorm:"column:plot" json:"plot"`
	FileNumber      string        `gorm:"column:file_number" json:"file_number"`
	Notes           string        `gorm:"column:notes" json:"notes"`
	PromiseFunnel   PromiseFunnel `gorm:"column:promise_funnel;default:pending" json:"promise_funnel"`
	Scores          Scores        `gorm:"embedded" json:"scores"`
	HealthScore     int           `gorm:"column:health_score;not null" json:"health_score"`
	Tier            Tier          `gorm:"column:tier;not null" json:"tier"`
	LastInteraction time.Time     `gorm:"column:last_interaction" json:"last_interaction"`
	NextAction      *time.Time    `gorm:"column:next_action" json:"next_action,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// ClientCreateRequest is the payload for creating a client.
type ClientCreateRequest struct {
	Name          string        `json:"name" validate:"required"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email" validate:"omitempty,email"`
	Sector        string        `json:"sector" validate:"omitempty,oneof=B1 'Tulip 1' 'Tulip 2' 'C Extension' 'Tulip 2 Extension' 'Burj Block' 'Burj Boulevard'"`
	Category      string        `json:"category" validate:"omitempty,oneof=A B C D"`
	Plot          string        `json:"plot"`
	FileNumber    string        `json:"file_number"`
	Notes         string        `json:"notes"`
	PromiseFunnel PromiseFunnel `json:"promise_funnel" validate:"omitempty,oneof=pending promised kept partial broken"`
	Scores        Scores        `json:"scores"`
	NextAction    *time.Time    `json:"next_action"`
}

// ClientUpdateRequest is the payload for updating a client. All fields are
// optional; omitted fields keep their stored value.
type ClientUpdateRequest struct {
	Name          *string        `json:"name"`
	Phone         *string        `json:"phone"`
	Email         *string        `json:"email" validate:"omitempty,email"`
	Sector        *string        `json:"sector" validate:"omitempty,oneof=B1 'Tulip 1' 'Tulip 2' 'C Extension' 'Tulip 2 Extension' 'Burj Block' 'Burj Boulevard'"`
	Category      *string        `json:"category" validate:"omitempty,oneof=A B C D"`
	Plot          *string        `json:"plot"`
	FileNumber    *string        `json:"file_number"`
	Notes         *string        `json:"notes"`
	PromiseFunnel *PromiseFunnel `json:"promise_funnel" validate:"omitempty,oneof=pending promised kept partial broken"`
	Scores        *Scores        `json:"scores"`
	NextAction    *time.Time     `json:"next_action"`
}

// ClientListRequest carries list filters. Filtering mirrors the dashboard UI:
// tier match plus a case-insensitive search over name, phone and email.
type ClientListRequest struct {
	Tier   string `query:"tier" validate:"omitempty,oneof=Green Amber Red"`
	Search string `query:"search"`
	Page   int    `query:"page" validate:"min=0"`
	Limit  int    `query:"limit" validate:"min=0,max=200"`
}

// ClientDetail is a client plus presentation hints computed from its tier and
// checklist state.
type ClientDetail struct {
	Client
	ChecklistDone     int      `json:"checklist_done"`
	ChecklistTotal    int      `json:"checklist_total"`
	SuggestedActions  []string `json:"suggested_actions,omitempty"`
	NextBestActions   []string `json:"next_best_actions,omitempty"`
	SLACallbackNeeded bool     `json:"sla_callback_needed"`
}

// ClientListResponse is a paginated list of clients.
type ClientListResponse struct {
	Data       []Client       `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}
