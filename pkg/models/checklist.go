package models

import (
	"time"

	"github.com/google/uuid"
)

// Checklist item keys. The catalogue is fixed: every client gets exactly one
// row per key, seeded undone at creation.
const (
	ItemTextSMS             = "TEXT_SMS"
	ItemWhatsApp            = "WHATSAPP"
	ItemLetter              = "LETTER"
	ItemEmail               = "EMAIL"
	ItemMarketing           = "MARKETING"
	ItemDevelopment         = "DEVELOPMENT"
	ItemLifestyle           = "LIFESTYLE"
	ItemPromotion           = "PROMOTION"
	ItemUniqueSellingPoints = "UNIQUE_SELLING_POINTS"
	ItemSiteVisitScheduled  = "SITE_VISIT_SCHEDULED"
	ItemSiteVisitCompleted  = "SITE_VISIT_COMPLETED"
)

// CatalogueEntry pairs an item key with its display label.
type CatalogueEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ChecklistCatalogue is the ordered, fixed set of marketing/communication
// touchpoints tracked per client.
var ChecklistCatalogue = []CatalogueEntry{
	{ItemTextSMS, "Text SMS"},
	{ItemWhatsApp, "WhatsApp"},
	{ItemLetter, "Letter"},
	{ItemEmail, "Email"},
	{ItemMarketing, "Marketing"},
	{ItemDevelopment, "Development"},
	{ItemLifestyle, "Lifestyle"},
	{ItemPromotion, "Promotion"},
	{ItemUniqueSellingPoints, "Unique Selling Points"},
	{ItemSiteVisitScheduled, "Site Visit – Scheduled"},
	{ItemSiteVisitCompleted, "Site Visit – Completed"},
}

// ValidItemKey reports whether key is part of the fixed catalogue.
func ValidItemKey(key string) bool {
	for _, e := range ChecklistCatalogue {
		if e.Key == key {
			return true
		}
	}
	return false
}

// ItemLabel returns the display label for a catalogue key, or the key itself
// when unknown.
func ItemLabel(key string) string {
	for _, e := range ChecklistCatalogue {
		if e.Key == key {
			return e.Label
		}
	}
	return key
}

// ChecklistItem is one touchpoint row for one client. DoneTS is set exactly
// when Done transitions to true and cleared when it transitions back.
type ChecklistItem struct {
	ClientID uuid.UUID  `gorm:"type:uuid;column:client_id;primaryKey" json:"client_id"`
	Item     string     `gorm:"column:item;primaryKey" json:"item"`
	Done     bool       `gorm:"column:done;not null;default:false" json:"done"`
	DoneTS   *time.Time `gorm:"column:done_ts" json:"done_ts,omitempty"`
	Label    string     `gorm:"-" json:"label,omitempty"`
}

func (ChecklistItem) TableName() string {
	return "checklist_items"
}

// ChecklistToggleRequest flips one checklist item.
type ChecklistToggleRequest struct {
	Done bool `json:"done"`
}

// CoverageEntry is the completion percentage of one catalogue item across all
// clients.
type CoverageEntry struct {
	Item     string `json:"item"`
	Label    string `json:"label"`
	Coverage int    `json:"coverage"`
}
