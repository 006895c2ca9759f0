package model

import "time"

// Recipient holds the personal and legal identification fields required by
// customs for cross-border parcels. Field formats are not validated.
type Recipient struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id,omitempty"`
	Name              string    `json:"name"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	MiddleName        string    `json:"middle_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	BirthDate         string    `json:"birth_date"`
	PassportSeries    string    `json:"passport_series"`
	PassportNumber    string    `json:"passport_number"`
	PassportIssueDate string    `json:"passport_issue_date"`
	INN               string    `json:"inn"`
	CreatedAt         time.Time `json:"created_at"`
}

func (r *Recipient) GetID() int64             { return r.ID }
func (r *Recipient) SetID(id int64)           { r.ID = id }
func (r *Recipient) GetCreatedAt() time.Time  { return r.CreatedAt }
func (r *Recipient) SetCreatedAt(t time.Time) { r.CreatedAt = t }
