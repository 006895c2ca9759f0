package model

import (
	"strconv"
	"time"
)

// Order statuses travel on the wire in Russian, matching the mini-app UI.
const (
	OrderStatusAwaitingWarehouse = "Ожидается на складе"
	OrderStatusAtWarehouse       = "На складе"
	OrderStatusShipped           = "Отправлено"
	OrderStatusDelivered         = "Доставлено"
)

// Order is a purchase recorded by the user. The service flags are persisted
// as 0/1 integers and coerced back to booleans at the read boundary.
type Order struct {
	ID                      int64     `json:"id"`
	UserID                  int64     `json:"user_id,omitempty"`
	ProductName             string    `json:"product_name"`
	Link                    string    `json:"link"`
	Price                   float64   `json:"price"`
	Quantity                int       `json:"quantity"`
	Photo                   string    `json:"photo"`
	WarehousePhoto          string    `json:"warehouse_photo"`
	Comment                 string    `json:"comment"`
	CheckService            string    `json:"check_service"`
	Consolidation           bool      `json:"consolidation"`
	RemovePostalPackaging   bool      `json:"remove_postal_packaging"`
	RemoveOriginalPackaging bool      `json:"remove_original_packaging"`
	PhotoReport             bool      `json:"photo_report"`
	Status                  string    `json:"status"`
	StatusDate              string    `json:"status_date"`
	TrackNumber             string    `json:"track_number"`
	CreatedAt               time.Time `json:"created_at"`
}

func (o *Order) GetID() int64             { return o.ID }
func (o *Order) SetID(id int64)           { o.ID = id }
func (o *Order) GetCreatedAt() time.Time  { return o.CreatedAt }
func (o *Order) SetCreatedAt(t time.Time) { o.CreatedAt = t }

// NewTrackNumber builds the synthetic tracking number assigned to orders
// created without one.
func NewTrackNumber(t time.Time) string {
	return "CN" + strconv.FormatInt(t.UnixMilli(), 10)
}
