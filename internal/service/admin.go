package service

import (
	"context"
	"database/sql"
	"fmt"

	"logitrack/internal/model"
)

// AdminService backs the read-only reporting surface: aggregate counts and
// full per-entity dumps joined with the owning user's identity.
type AdminService struct {
	db *sql.DB
}

func NewAdminService(db *sql.DB) *AdminService {
	return &AdminService{db: db}
}

type Stats struct {
	Users             int64 `json:"users"`
	Recipients        int64 `json:"recipients"`
	Orders            int64 `json:"orders"`
	Consolidations    int64 `json:"consolidations"`
	DeliveryAddresses int64 `json:"deliveryAddresses"`
}

func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	counts := []struct {
		table string
		dst   *int64
	}{
		{"users", &st.Users},
		{"recipients", &st.Recipients},
		{"orders", &st.Orders},
		{"consolidations", &st.Consolidations},
		{"delivery_addresses", &st.DeliveryAddresses},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+c.table).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.table, err)
		}
	}
	return &st, nil
}

// Owner carries the identity columns joined onto every dump row.
type Owner struct {
	OwnerUsername   string `json:"username"`
	OwnerTelegramID string `json:"telegram_id"`
}

type RecipientWithOwner struct {
	model.Recipient
	Owner
}

type OrderWithOwner struct {
	model.Order
	Owner
}

type ConsolidationWithOwner struct {
	model.Consolidation
	Owner
}

type AddressWithOwner struct {
	model.DeliveryAddress
	Owner
}

func (s *AdminService) DumpUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, telegram_id, username, first_name, last_name, created_at
		FROM users
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return users, nil
}

func (s *AdminService) DumpRecipients(ctx context.Context) ([]RecipientWithOwner, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.name, r.first_name, r.last_name, r.middle_name, r.email, r.phone,
			r.birth_date, r.passport_series, r.passport_number, r.passport_issue_date, r.inn, r.created_at,
			COALESCE(u.username, ''), COALESCE(u.telegram_id, '')
		FROM recipients r
		LEFT JOIN users u ON r.user_id = u.id
		ORDER BY r.created_at DESC, r.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query recipients: %w", err)
	}
	defer rows.Close()

	recipients := []RecipientWithOwner{}
	for rows.Next() {
		var r RecipientWithOwner
		err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.FirstName, &r.LastName, &r.MiddleName,
			&r.Email, &r.Phone, &r.BirthDate, &r.PassportSeries, &r.PassportNumber,
			&r.PassportIssueDate, &r.INN, &r.CreatedAt,
			&r.OwnerUsername, &r.OwnerTelegramID)
		if err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		recipients = append(recipients, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return recipients, nil
}

func (s *AdminService) DumpOrders(ctx context.Context) ([]OrderWithOwner, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.product_name, o.link, o.price, o.quantity, o.photo, o.warehouse_photo,
			o.comment, o.check_service, o.consolidation, o.remove_postal_packaging,
			o.remove_original_packaging, o.photo_report, o.status, o.status_date, o.track_number, o.created_at,
			COALESCE(u.username, ''), COALESCE(u.telegram_id, '')
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC, o.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []OrderWithOwner{}
	for rows.Next() {
		var o OrderWithOwner
		var consolidation, removePostal, removeOriginal, photoReport int16
		err := rows.Scan(&o.ID, &o.UserID, &o.ProductName, &o.Link, &o.Price, &o.Quantity,
			&o.Photo, &o.WarehousePhoto, &o.Comment, &o.CheckService,
			&consolidation, &removePostal, &removeOriginal, &photoReport,
			&o.Status, &o.StatusDate, &o.TrackNumber, &o.CreatedAt,
			&o.OwnerUsername, &o.OwnerTelegramID)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Order.Consolidation = consolidation != 0
		o.RemovePostalPackaging = removePostal != 0
		o.RemoveOriginalPackaging = removeOriginal != 0
		o.PhotoReport = photoReport != 0
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}

func (s *AdminService) DumpConsolidations(ctx context.Context) ([]ConsolidationWithOwner, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.name, c.description, c.order_ids, c.recipient_id,
			c.delivery_address_id, c.status, c.created_at,
			COALESCE(u.username, ''), COALESCE(u.telegram_id, '')
		FROM consolidations c
		LEFT JOIN users u ON c.user_id = u.id
		ORDER BY c.created_at DESC, c.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query consolidations: %w", err)
	}
	defer rows.Close()

	consolidations := []ConsolidationWithOwner{}
	for rows.Next() {
		var c ConsolidationWithOwner
		var orderIDs string
		var recipientID, addressID sql.NullInt64
		err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &orderIDs,
			&recipientID, &addressID, &c.Status, &c.CreatedAt,
			&c.OwnerUsername, &c.OwnerTelegramID)
		if err != nil {
			return nil, fmt.Errorf("scan consolidation: %w", err)
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
		consolidations = append(consolidations, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return consolidations, nil
}

func (s *AdminService) DumpAddresses(ctx context.Context) ([]AddressWithOwner, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.user_id, d.name, d.company, d.address, d.created_at,
			COALESCE(u.username, ''), COALESCE(u.telegram_id, '')
		FROM delivery_addresses d
		LEFT JOIN users u ON d.user_id = u.id
		ORDER BY d.created_at DESC, d.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query addresses: %w", err)
	}
	defer rows.Close()

	addresses := []AddressWithOwner{}
	for rows.Next() {
		var a AddressWithOwner
		err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Company, &a.Address, &a.CreatedAt,
			&a.OwnerUsername, &a.OwnerTelegramID)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return addresses, nil
}
