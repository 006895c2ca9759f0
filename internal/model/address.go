package model

import "time"

// Delivery companies offered by the mini-app. The server stores whatever the
// client sends; the set is advisory for UI surfaces.
const (
	CompanyCDEK        = "CDEK"
	CompanyRussianPost = "Почта России"
	CompanyDPD         = "DPD"
	CompanyBUSCourier  = "BUS Курьер"
)

// DeliveryCompanies lists the selectable carriers in UI order.
var DeliveryCompanies = []string{CompanyCDEK, CompanyRussianPost, CompanyDPD, CompanyBUSCourier}

// DeliveryAddress is a labelled destination bound to one carrier company.
type DeliveryAddress struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *DeliveryAddress) GetID() int64             { return a.ID }
func (a *DeliveryAddress) SetID(id int64)           { a.ID = id }
func (a *DeliveryAddress) GetCreatedAt() time.Time  { return a.CreatedAt }
func (a *DeliveryAddress) SetCreatedAt(t time.Time) { a.CreatedAt = t }
