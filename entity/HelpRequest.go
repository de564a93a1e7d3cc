package entity

import (
	"time"

	"gorm.io/gorm"
)

// Help request types.
const (
	HelpAdminSupport       = "admin_support"
	HelpProviderSupport    = "provider_support"
	HelpConsumerToProvider = "consumer_to_provider"
)

func ValidHelpType(t string) bool {
	return t == HelpAdminSupport || t == HelpProviderSupport || t == HelpConsumerToProvider
}

// Help request statuses. Any value may be set by an authorized party;
// resolved additionally stamps resolution metadata.
const (
	HelpOpen       = "open"
	HelpInProgress = "in_progress"
	HelpResolved   = "resolved"
	HelpClosed     = "closed"
)

func ValidHelpStatus(s string) bool {
	return s == HelpOpen || s == HelpInProgress || s == HelpResolved || s == HelpClosed
}

// Priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

func ValidHelpPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh || p == PriorityUrgent
}

// Categories.
const (
	HelpCatTechnical = "technical"
	HelpCatBilling   = "billing"
	HelpCatOrder     = "order"
	HelpCatAccount   = "account"
	HelpCatGeneral   = "general"
)

func ValidHelpCategory(c string) bool {
	switch c {
	case HelpCatTechnical, HelpCatBilling, HelpCatOrder, HelpCatAccount, HelpCatGeneral:
		return true
	}
	return false
}

type HelpRequest struct {
	gorm.Model
	FromUserID uint `gorm:"not null;index" json:"fromUserId"`
	FromUser   User `gorm:"foreignKey:FromUserID" json:"-"`

	// Nil for admin/provider support (recipient is implicitly all admins).
	ToUserID *uint `gorm:"index" json:"toUserId"`
	ToUser   *User `gorm:"foreignKey:ToUserID" json:"-"`

	Type     string `gorm:"not null" json:"type"`
	Subject  string `gorm:"not null" json:"subject"`
	Message  string `gorm:"not null" json:"message"`
	Status   string `gorm:"not null;default:open" json:"status"`
	Priority string `gorm:"not null;default:medium" json:"priority"`
	Category string `gorm:"not null;default:general" json:"category"`

	Responses []HelpResponse `json:"responses"`

	ResolvedAt *time.Time `json:"resolvedAt"`
	ResolvedBy *uint      `json:"resolvedBy"`
}

// HelpResponse is an append-only thread entry; rows are never edited.
type HelpResponse struct {
	gorm.Model
	HelpRequestID uint `gorm:"not null;index" json:"helpRequestId"`

	UserID  uint   `gorm:"not null" json:"userId"`
	User    User   `json:"-"`
	Message string `gorm:"not null" json:"message"`
	IsAdmin bool   `gorm:"not null;default:false" json:"isAdmin"`
}
