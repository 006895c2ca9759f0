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

func ListAddressesHandler(svc *service.AddressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		addresses, err := svc.ListByUser(r.Context(), user.ID)
		if err != nil {
			slog.Error("list addresses failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, addresses)
	}
}

func GetAddressHandler(svc *service.AddressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "address not found")
			return
		}

		address, err := svc.Get(r.Context(), user.ID, id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "address not found")
				return
			}
			slog.Error("get address failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, address)
	}
}

func CreateAddressHandler(svc *service.AddressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req model.DeliveryAddress
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		address, err := svc.Create(r.Context(), user.ID, &req)
		if err != nil {
			slog.Error("create address failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, address)
	}
}

func UpdateAddressHandler(svc *service.AddressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "address not found")
			return
		}

		var req model.DeliveryAddress
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		address, err := svc.Update(r.Context(), user.ID, id, &req)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "address not found")
				return
			}
			slog.Error("update address failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, address)
	}
}

func DeleteAddressHandler(svc *service.AddressService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusNotFound, "address not found")
			return
		}

		if err := svc.Delete(r.Context(), user.ID, id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				writeError(w, http.StatusNotFound, "address not found")
				return
			}
			slog.Error("delete address failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
