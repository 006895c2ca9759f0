package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"logitrack/internal/model"
)

const addressColumns = `id, user_id, name, company, address, created_at`

type AddressService struct {
	db *sql.DB
}

func NewAddressService(db *sql.DB) *AddressService {
	return &AddressService{db: db}
}

func scanAddress(row interface{ Scan(...any) error }) (*model.DeliveryAddress, error) {
	var a model.DeliveryAddress
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Company, &a.Address, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AddressService) ListByUser(ctx context.Context, userID int64) ([]model.DeliveryAddress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+addressColumns+`
		FROM delivery_addresses
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query addresses: %w", err)
	}
	defer rows.Close()

	addresses := []model.DeliveryAddress{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, *a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return addresses, nil
}

func (s *AddressService) Get(ctx context.Context, userID, id int64) (*model.DeliveryAddress, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+addressColumns+` FROM delivery_addresses WHERE id = $1 AND user_id = $2`,
		id, userID)

	a, err := scanAddress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

func (s *AddressService) Create(ctx context.Context, userID int64, a *model.DeliveryAddress) (*model.DeliveryAddress, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO delivery_addresses (user_id, name, company, address)
		VALUES ($1, $2, $3, $4)
		RETURNING `+addressColumns,
		userID, a.Name, a.Company, a.Address)

	created, err := scanAddress(row)
	if err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}
	return created, nil
}

func (s *AddressService) Update(ctx context.Context, userID, id int64, a *model.DeliveryAddress) (*model.DeliveryAddress, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE delivery_addresses SET name = $1, company = $2, address = $3
		WHERE id = $4 AND user_id = $5
		RETURNING `+addressColumns,
		a.Name, a.Company, a.Address, id, userID)

	updated, err := scanAddress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update address: %w", err)
	}
	return updated, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM delivery_addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
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
