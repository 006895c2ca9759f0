package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"logitrack/internal/model"
)

const recipientColumns = `id, user_id, name, first_name, last_name, middle_name, email, phone,
	birth_date, passport_series, passport_number, passport_issue_date, inn, created_at`

type RecipientService struct {
	db *sql.DB
}

func NewRecipientService(db *sql.DB) *RecipientService {
	return &RecipientService{db: db}
}

func scanRecipient(row interface{ Scan(...any) error }) (*model.Recipient, error) {
	var r model.Recipient
	err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.FirstName, &r.LastName, &r.MiddleName,
		&r.Email, &r.Phone, &r.BirthDate, &r.PassportSeries, &r.PassportNumber,
		&r.PassportIssueDate, &r.INN, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RecipientService) ListByUser(ctx context.Context, userID int64) ([]model.Recipient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recipientColumns+`
		FROM recipients
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query recipients: %w", err)
	}
	defer rows.Close()

	recipients := []model.Recipient{}
	for rows.Next() {
		r, err := scanRecipient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		recipients = append(recipients, *r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return recipients, nil
}

func (s *RecipientService) Get(ctx context.Context, userID, id int64) (*model.Recipient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipientColumns+` FROM recipients WHERE id = $1 AND user_id = $2`,
		id, userID)

	r, err := scanRecipient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get recipient: %w", err)
	}
	return r, nil
}

func (s *RecipientService) Create(ctx context.Context, userID int64, r *model.Recipient) (*model.Recipient, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO recipients (
			user_id, name, first_name, last_name, middle_name, email, phone,
			birth_date, passport_series, passport_number, passport_issue_date, inn
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+recipientColumns,
		userID, r.Name, r.FirstName, r.LastName, r.MiddleName, r.Email, r.Phone,
		r.BirthDate, r.PassportSeries, r.PassportNumber, r.PassportIssueDate, r.INN)

	created, err := scanRecipient(row)
	if err != nil {
		return nil, fmt.Errorf("insert recipient: %w", err)
	}
	return created, nil
}

func (s *RecipientService) Update(ctx context.Context, userID, id int64, r *model.Recipient) (*model.Recipient, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE recipients SET
			name = $1, first_name = $2, last_name = $3, middle_name = $4, email = $5, phone = $6,
			birth_date = $7, passport_series = $8, passport_number = $9, passport_issue_date = $10, inn = $11
		WHERE id = $12 AND user_id = $13
		RETURNING `+recipientColumns,
		r.Name, r.FirstName, r.LastName, r.MiddleName, r.Email, r.Phone,
		r.BirthDate, r.PassportSeries, r.PassportNumber, r.PassportIssueDate, r.INN,
		id, userID)

	updated, err := scanRecipient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update recipient: %w", err)
	}
	return updated, nil
}

func (s *RecipientService) Delete(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipients WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete recipient: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
