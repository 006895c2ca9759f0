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

func ListConsolidationsHandler(svc *service.ConsolidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		consolidations, err := svc.ListByUser(r.Context(), user.ID)
		if err != nil {
			slog.Error("list consolidations failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, consolidations)
	}
}

func GetConsolidationHandler(svc *service.ConsolidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "consolidation not found")
			return
		}

		consolidation, err := svc.Get(r.Context(), user.ID, id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "consolidation not found")
				return
			}
			slog.Error("get consolidation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, consolidation)
	}
}

func CreateConsolidationHandler(svc *service.ConsolidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req model.Consolidation
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		consolidation, err := svc.Create(r.Context(), user.ID, &req)
		if err != nil {
			slog.Error("create consolidation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, consolidation)
	}
}

func UpdateConsolidationHandler(svc *service.ConsolidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "consolidation not found")
			return
		}

		var req model.Consolidation
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		consolidation, err := svc.Update(r.Context(), user.ID, id, &req)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "consolidation not found")
				return
			}
			slog.Error("update consolidation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, consolidation)
	}
}

func DeleteConsolidationHandler(svc *service.ConsolidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "consolidation not found")
			return
		}

		if err := svc.Delete(r.Context(), user.ID, id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "consolidation not found")
				return
			}
			slog.Error("delete consolidation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
