package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"logitrack/internal/model"
	"logitrack/internal/mw"
	"logitrack/internal/service"
)

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func ListRecipientsHandler(svc *service.RecipientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		recipients, err := svc.ListByUser(r.Context(), user.ID)
		if err != nil {
			slog.Error("list recipients failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, recipients)
	}
}

func GetRecipientHandler(svc *service.RecipientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "recipient not found")
			return
		}

		recipient, err := svc.Get(r.Context(), user.ID, id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "recipient not found")
				return
			}
			slog.Error("get recipient failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, recipient)
	}
}

func CreateRecipientHandler(svc *service.RecipientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req model.Recipient
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		recipient, err := svc.Create(r.Context(), user.ID, &req)
		if err != nil {
			slog.Error("create recipient failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, recipient)
	}
}

func UpdateRecipientHandler(svc *service.RecipientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "recipient not found")
			return
		}

		var req model.Recipient
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		recipient, err := svc.Update(r.Context(), user.ID, id, &req)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "recipient not found")
				return
			}
			slog.Error("update recipient failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, recipient)
	}
}

func DeleteRecipientHandler(svc *service.RecipientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "recipient not found")
			return
		}

		if err := svc.Delete(r.Context(), user.ID, id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "recipient not found")
				return
			}
			slog.Error("delete recipient failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
