package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"logitrack/internal/model"
)

const consolidationColumns = `id, user_id, name, description, order_ids, recipient_id, delivery_address_id, status, created_at`

type ConsolidationService struct {
	db *sql.DB
}

func NewConsolidationService(db *sql.DB) *ConsolidationService {
	return &ConsolidationService{db: db}
}

func marshalOrderIDs(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("marshal order ids: %w", err)
	}
	return string(b), nil
}

func unmarshalOrderIDs(raw string, dst *[]int64) error {
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("unmarshal order ids: %w", err)
	}
	return nil
}

func scanConsolidation(row interface{ Scan(...any) error }) (*model.Consolidation, error) {
	var c model.Consolidation
	var orderIDs string
	var recipientID, addressID sql.NullInt64
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &orderIDs,
		&recipientID, &addressID, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.OrderIDs = []int64{}
	if orderIDs != "" {
		if err := unmarshalOrderIDs(orderIDs, &c.OrderIDs); err != nil {
			return nil, err
		}
	}
	if recipientID.Valid {
		c.RecipientID = &recipientID.Int64
	}
	if addressID.Valid {
		c.DeliveryAddressID = &addressID.Int64
	}
	return &c, nil
}

func (s *ConsolidationService) ListByUser(ctx context.Context, userID int64) ([]model.Consolidation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+consolidationColumns+`
		FROM consolidations
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query consolidations: %w", err)
	}
	defer rows.Close()

	consolidations := []model.Consolidation{}
	for rows.Next() {
		c, err := scanConsolidation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consolidation: %w", err)
		}
		consolidations = append(consolidations, *c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return consolidations, nil
}

func (s *ConsolidationService) Get(ctx context.Context, userID, id int64) (*model.Consolidation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+consolidationColumns+` FROM consolidations WHERE id = $1 AND user_id = $2`,
		id, userID)

	c, err := scanConsolidation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get consolidation: %w", err)
	}
	return c, nil
}

func (s *ConsolidationService) Create(ctx context.Context, userID int64, c *model.Consolidation) (*model.Consolidation, error) {
	orderIDs, err := marshalOrderIDs(c.OrderIDs)
	if err != nil {
		return nil, err
	}
	status := c.Status
	if status == "" {
		status = model.ConsolidationStatusCreated
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO consolidations (user_id, name, description, order_ids, recipient_id, delivery_address_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+consolidationColumns,
		userID, c.Name, c.Description, orderIDs, c.RecipientID, c.DeliveryAddressID, status)

	created, err := scanConsolidation(row)
	if err != nil {
		return nil, fmt.Errorf("insert consolidation: %w", err)
	}
	return created, nil
}

func (s *ConsolidationService) Update(ctx context.Context, userID, id int64, c *model.Consolidation) (*model.Consolidation, error) {
	orderIDs, err := marshalOrderIDs(c.OrderIDs)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE consolidations SET
			name = $1, description = $2, order_ids = $3, recipient_id = $4, delivery_address_id = $5, status = $6
		WHERE id = $7 AND user_id = $8
		RETURNING `+consolidationColumns,
		c.Name, c.Description, orderIDs, c.RecipientID, c.DeliveryAddressID, c.Status, id, userID)

	updated, err := scanConsolidation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update consolidation: %w", err)
	}
	return updated, nil
}

func (s *ConsolidationService) Delete(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM consolidations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete consolidation: %w", err)
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
