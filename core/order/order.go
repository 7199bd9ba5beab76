package order

import "time"

type Status string

const (
	Created Status = "created"
	Pending Status = "pending"
	Success Status = "success"
)

type Order struct {
	ID          string    `json:"id" db:"order_id"`
	UserID      string    `json:"userId" db:"user_id"`
	RemoteID    string    `json:"remoteId" db:"remote_id"`
	TotalAmount float64   `json:"totalAmount" db:"total_amount"`
	Currency    string    `json:"currency" db:"currency"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
