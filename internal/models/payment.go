package models

import "encoding/json"

// PaymentStatus is the outcome of a charge.
type PaymentStatus string

const (
	PaymentStatusSuccessful PaymentStatus = "successful"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusPending    PaymentStatus = "pending"
)

// Payment represents a charge for a ride.
type Payment struct {
	ID        ID            `json:"id"`
	UserID    ID            `json:"userId"`
	UserName  string        `json:"userName,omitempty"`
	RideID    ID            `json:"rideId,omitempty"`
	Amount    float64       `json:"amount"` // in USD
	Method    string        `json:"method"` // "Credit Card", "Debit Card", "Wallet"
	Status    PaymentStatus `json:"status"`
	Date      Timestamp     `json:"date"`
	CardLast4 string        `json:"cardLast4,omitempty"`
}

// UnmarshalJSON accepts either "id" or "_id".
func (p *Payment) UnmarshalJSON(data []byte) error {
	type plain Payment
	if err := json.Unmarshal(data, (*plain)(p)); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = mongoID(data)
	}
	return nil
}
