package stats

import (
	"time"

	"github.com/ukydev/scooter-console/internal/models"
)

// Usage describes how much of a promotion has been redeemed.
type Usage struct {
	Used      int     `json:"used"`
	Limit     int     `json:"limit"`
	Remaining int     `json:"remaining"`
	Percent   float64 `json:"percent"`
}

// PromotionUsage computes redemption progress. A promotion without a
// positive limit reports 0%.
func PromotionUsage(p models.Promotion) Usage {
	u := Usage{Used: p.UsedCount, Limit: p.UsageLimit}
	if p.UsageLimit > 0 {
		u.Remaining = p.UsageLimit - p.UsedCount
		if u.Remaining < 0 {
			u.Remaining = 0
		}
	}
	u.Percent = ClampPercent(PercentOf(float64(p.UsedCount), float64(p.UsageLimit)))
	return u
}

// EffectiveStatus derives a promotion's status from its validity window.
// Paused promotions stay paused; otherwise a promotion is scheduled before
// its start date, expired after its end date and active in between. The end
// date is inclusive to the end of that day when it carries no clock time.
func EffectiveStatus(p models.Promotion, now time.Time) models.PromotionStatus {
	if p.Status == models.PromotionStatusPaused {
		return p.Status
	}
	if !p.StartDate.IsZero() && now.Before(p.StartDate.Time) {
		return models.PromotionStatusScheduled
	}
	if !p.EndDate.IsZero() {
		end := p.EndDate.Time
		if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
			end = end.AddDate(0, 0, 1)
		}
		if !now.Before(end) {
			return models.PromotionStatusExpired
		}
	}
	if p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit {
		return models.PromotionStatusExpired
	}
	return models.PromotionStatusActive
}

// PromotionView is a promotion with its derived numbers attached.
type PromotionView struct {
	models.Promotion
	Usage           Usage                  `json:"usage"`
	EffectiveStatus models.PromotionStatus `json:"effectiveStatus"`
}

// PromotionSummary holds the totals of the promotions screen.
type PromotionSummary struct {
	Promotions  []PromotionView                `json:"promotions"`
	ByStatus    map[models.PromotionStatus]int `json:"byStatus"`
	TotalUsed   int                            `json:"totalUsed"`
	TotalLimit  int                            `json:"totalLimit"`
	OverallRate float64                        `json:"overallRate"`
}

// SummarizePromotions attaches usage and effective status to each promotion
// and totals them.
func SummarizePromotions(promos []models.Promotion, now time.Time) PromotionSummary {
	s := PromotionSummary{
		Promotions: make([]PromotionView, 0, len(promos)),
		ByStatus:   make(map[models.PromotionStatus]int),
	}
	for _, p := range promos {
		v := PromotionView{
			Promotion:       p,
			Usage:           PromotionUsage(p),
			EffectiveStatus: EffectiveStatus(p, now),
		}
		s.Promotions = append(s.Promotions, v)
		s.ByStatus[v.EffectiveStatus]++
		s.TotalUsed += p.UsedCount
		if p.UsageLimit > 0 {
			s.TotalLimit += p.UsageLimit
		}
	}
	s.OverallRate = ClampPercent(PercentOf(float64(s.TotalUsed), float64(s.TotalLimit)))
	return s
}
