package handler

import (
	"log/slog"
	"net/http"

	"logitrack/internal/service"
)

func AdminStatsHandler(svc *service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			slog.Error("admin stats failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func AdminUsersHandler(svc *service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.DumpUsers(r.Context())
		if err != nil {
			slog.Error("admin users dump failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": len(users), "users": users})
	}
}

func AdminRecipientsHandler(svc *service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipients, err := svc.DumpRecipients(r.Context())
		if err != nil {
			slog.Error("admin recipients dump failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": len(recipients), "recipients": recipients})
	}
}

func AdminOrdersHandler(svc *service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.DumpOrders(r.Context())
		if err != nil {
			slog.Error("admin orders dump failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": len(orders), "orders": orders})
	}
}

func AdminConsolidationsHandler(svc *service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		consolidations, err := svc.DumpConsolidations(r.Context())
		if err != nil {
			slog.Error("admin consolidations dump failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": len(consolidations), "consolidations": consolidations})
	}
}

func AdminAddressesHandler(svc *service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addresses, err := svc.DumpAddresses(r.Context())
		if err != nil {
			slog.Error("admin addresses dump failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": len(addresses), "addresses": addresses})
	}
}
