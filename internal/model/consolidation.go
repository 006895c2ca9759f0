package model

import "time"

const (
	ConsolidationStatusCreated  = "Создано"
	ConsolidationStatusPacking  = "Комплектуется"
	ConsolidationStatusShipped  = "Отправлено"
	ConsolidationStatusReceived = "Получено"
)

// Consolidation groups orders intended to ship together to one recipient and
// delivery address. The order id set is stored serialized, not as a join
// table; nothing guarantees the referenced orders still exist.
type Consolidation struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id,omitempty"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	OrderIDs          []int64   `json:"order_ids"`
	RecipientID       *int64    `json:"recipient_id"`
	DeliveryAddressID *int64    `json:"delivery_address_id"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

func (c *Consolidation) GetID() int64             { return c.ID }
func (c *Consolidation) SetID(id int64)           { c.ID = id }
func (c *Consolidation) GetCreatedAt() time.Time  { return c.CreatedAt }
func (c *Consolidation) SetCreatedAt(t time.Time) { c.CreatedAt = t }
