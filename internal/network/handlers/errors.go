package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/games"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/services"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/session"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/storage"
	"go.uber.org/zap"
)

// StatusFor - код ответа для доменной ошибки
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, ledger.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrActiveGame):
		return http.StatusConflict
	case errors.Is(err, services.ErrCooldown):
		return http.StatusTooManyRequests
	case errors.Is(err, games.ErrForeignControl):
		return http.StatusForbidden
	case errors.Is(err, games.ErrUnknownControl), errors.Is(err, storage.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrStore), errors.Is(err, games.ErrEngineStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// writeError - ответ с текстом ошибки; внутренние ошибки не раскрываются
func writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)

	var cooldown *services.CooldownError
	if errors.As(err, &cooldown) {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(cooldown.RetryAfter.Seconds()))))
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed:", zap.Error(err))
		http.Error(w, "Internal Server Error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

// writeJSON - ответ в формате JSON
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode JSON response:", zap.Error(err))
	}
}
