package stats

import "github.com/ukydev/scooter-console/internal/models"

// PaymentSummary holds the totals of the payment report.
type PaymentSummary struct {
	TotalAmount     float64 `json:"totalAmount"`
	SuccessfulCount int     `json:"successfulCount"`
	FailedCount     int     `json:"failedCount"`
	PendingCount    int     `json:"pendingCount"`
	SuccessRate     float64 `json:"successRate"`
}

// SummarizePayments tallies payments by outcome. Only successful payments
// count towards TotalAmount.
func SummarizePayments(payments []models.Payment) PaymentSummary {
	var s PaymentSummary
	amounts := make([]float64, 0, len(payments))
	for _, p := range payments {
		switch p.Status {
		case models.PaymentStatusSuccessful:
			s.SuccessfulCount++
			amounts = append(amounts, p.Amount)
		case models.PaymentStatusFailed:
			s.FailedCount++
		case models.PaymentStatusPending:
			s.PendingCount++
		}
	}
	s.TotalAmount = sumSorted(amounts)
	s.SuccessRate = PercentOf(float64(s.SuccessfulCount), float64(len(payments)))
	return s
}
