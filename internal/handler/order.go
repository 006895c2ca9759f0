package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"logitrack/internal/model"
	"logitrack/internal/mw"
	"logitrack/internal/service"
)

func ListOrdersHandler(svc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		orders, err := svc.ListByUser(r.Context(), user.ID)
		if err != nil {
			slog.Error("list orders failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, orders)
	}
}

func GetOrderHandler(svc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}

		order, err := svc.Get(r.Context(), user.ID, id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "order not found")
				return
			}
			slog.Error("get order failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, order)
	}
}

func CreateOrderHandler(svc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req model.Order
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		order, err := svc.Create(r.Context(), user.ID, &req)
		if err != nil {
			slog.Error("create order failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, order)
	}
}

func UpdateOrderHandler(svc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}

		var req model.Order
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		order, err := svc.Update(r.Context(), user.ID, id, &req)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "order not found")
				return
			}
			slog.Error("update order failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, order)
	}
}

func DeleteOrderHandler(svc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}

		if err := svc.Delete(r.Context(), user.ID, id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "order not found")
				return
			}
			slog.Error("delete order failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

type deleteManyRequest struct {
	IDs []int64 `json:"ids"`
}

type deleteManyResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

// DeleteOrdersHandler serves bulk deletion: DELETE /api/orders with a
// body-supplied id list. Deleted reports rows actually removed, which may be
// fewer than requested when ids are foreign or missing.
func DeleteOrdersHandler(svc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req deleteManyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if len(req.IDs) == 0 {
			writeError(w, http.StatusBadRequest, "ids array required")
			return
		}

		deleted, err := svc.DeleteMany(r.Context(), user.ID, req.IDs)
		if err != nil {
			slog.Error("bulk delete orders failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, deleteManyResponse{Success: true, Deleted: deleted})
	}
}
