package models

import "encoding/json"

// PromotionUnit says how a promotion's value is applied.
type PromotionUnit string

const (
	PromotionUnitPercent PromotionUnit = "percent"
	PromotionUnitFixed   PromotionUnit = "fixed"
)

// PromotionStatus is the lifecycle state of a promotion.
type PromotionStatus string

const (
	PromotionStatusActive    PromotionStatus = "active"
	PromotionStatusScheduled PromotionStatus = "scheduled"
	PromotionStatusPaused    PromotionStatus = "paused"
	PromotionStatusExpired   PromotionStatus = "expired"
)

// IsValidPromotionStatus checks if a promotion status is known.
func IsValidPromotionStatus(s PromotionStatus) bool {
	switch s {
	case PromotionStatusActive, PromotionStatusScheduled, PromotionStatusPaused, PromotionStatusExpired:
		return true
	default:
		return false
	}
}

// Promotion represents a discount code.
type Promotion struct {
	ID          ID              `json:"id"`
	Title       string          `json:"title"`
	Code        string          `json:"code"`
	Type        string          `json:"type,omitempty"` // "discount"
	Value       float64         `json:"value"`
	Unit        PromotionUnit   `json:"unit"`
	StartDate   Timestamp       `json:"startDate"`
	EndDate     Timestamp       `json:"endDate"`
	UsageLimit  int             `json:"usageLimit"`
	UsedCount   int             `json:"usedCount"`
	Status      PromotionStatus `json:"status"`
	Description string          `json:"description,omitempty"`
}

// UnmarshalJSON accepts either "id" or "_id".
func (p *Promotion) UnmarshalJSON(data []byte) error {
	type plain Promotion
	if err := json.Unmarshal(data, (*plain)(p)); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = mongoID(data)
	}
	return nil
}
