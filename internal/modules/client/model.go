package client

import "time"

// Client is a regular of the stand. The three counters only ever move
// forward, and only when a completed sale is attributed to the client.
type Client struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Purchases     int64     `json:"purchases" bson:"purchases"`
	TotalSpent    int64     `json:"totalSpent" bson:"totalSpent"`
	LoyaltyStamps int64     `json:"loyaltyStamps" bson:"loyaltyStamps"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// CreateClientRequest holds the data for registering a client.
type CreateClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateClientRequest holds the editable fields; counters are owned by the
// sale ledger and cannot be set here.
type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}
