package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"logitrack/internal/model"
)

const orderColumns = `id, user_id, product_name, link, price, quantity, photo, warehouse_photo,
	comment, check_service, consolidation, remove_postal_packaging, remove_original_packaging,
	photo_report, status, status_date, track_number, created_at`

type OrderService struct {
	db *sql.DB
}

func NewOrderService(db *sql.DB) *OrderService {
	return &OrderService{db: db}
}

func boolToInt(b bool) int16 {
	if b {
		return 1
	}
	return 0
}

// scanOrder coerces the 0/1 flag columns back to booleans.
func scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	var o model.Order
	var consolidation, removePostal, removeOriginal, photoReport int16
	err := row.Scan(&o.ID, &o.UserID, &o.ProductName, &o.Link, &o.Price, &o.Quantity,
		&o.Photo, &o.WarehousePhoto, &o.Comment, &o.CheckService,
		&consolidation, &removePostal, &removeOriginal, &photoReport,
		&o.Status, &o.StatusDate, &o.TrackNumber, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.Consolidation = consolidation != 0
	o.RemovePostalPackaging = removePostal != 0
	o.RemoveOriginalPackaging = removeOriginal != 0
	o.PhotoReport = photoReport != 0
	return &o, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, userID, id int64) (*model.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`,
		id, userID)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (s *OrderService) Create(ctx context.Context, userID int64, o *model.Order) (*model.Order, error) {
	quantity := o.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	status := o.Status
	if status == "" {
		status = model.OrderStatusAwaitingWarehouse
	}
	trackNumber := o.TrackNumber
	if trackNumber == "" {
		trackNumber = model.NewTrackNumber(time.Now())
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, product_name, link, price, quantity, photo, warehouse_photo, comment,
			check_service, consolidation, remove_postal_packaging, remove_original_packaging,
			photo_report, status, status_date, track_number
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+orderColumns,
		userID, o.ProductName, o.Link, o.Price, quantity, o.Photo, o.WarehousePhoto, o.Comment,
		o.CheckService, boolToInt(o.Consolidation), boolToInt(o.RemovePostalPackaging),
		boolToInt(o.RemoveOriginalPackaging), boolToInt(o.PhotoReport),
		status, o.StatusDate, trackNumber)

	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return created, nil
}

func (s *OrderService) Update(ctx context.Context, userID, id int64, o *model.Order) (*model.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE orders SET
			product_name = $1, link = $2, price = $3, quantity = $4, photo = $5, warehouse_photo = $6,
			comment = $7, check_service = $8, consolidation = $9, remove_postal_packaging = $10,
			remove_original_packaging = $11, photo_report = $12, status = $13, status_date = $14,
			track_number = $15
		WHERE id = $16 AND user_id = $17
		RETURNING `+orderColumns,
		o.ProductName, o.Link, o.Price, o.Quantity, o.Photo, o.WarehousePhoto,
		o.Comment, o.CheckService, boolToInt(o.Consolidation), boolToInt(o.RemovePostalPackaging),
		boolToInt(o.RemoveOriginalPackaging), boolToInt(o.PhotoReport), o.Status, o.StatusDate,
		o.TrackNumber, id, userID)

	updated, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
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

// DeleteMany removes every listed order in the owner's scope and reports how
// many rows actually went away. Foreign or missing ids are skipped silently.
func (s *OrderService) DeleteMany(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args = append(args, id)
	}
	args = append(args, userID)

	query := fmt.Sprintf(`DELETE FROM orders WHERE id IN (%s) AND user_id = $%d`,
		strings.Join(placeholders, ","), len(ids)+1)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete orders: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return deleted, nil
}
