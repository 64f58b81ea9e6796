package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"go.uber.org/zap"
)

// GameEngine - запуск игр и доставка ввода
type GameEngine interface {
	Play(ctx context.Context, cmd models.Command) (models.Result, error)
	Input(ctx context.Context, ev models.InputEvent) (models.Result, error)
}

// PlayHandler - запуск игры по команде пользователя
func PlayHandler(e GameEngine) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cmd models.Command
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}
		if cmd.UserID <= 0 {
			http.Error(w, "user_id required", http.StatusBadRequest)
			return
		}

		frame, err := e.Play(r.Context(), cmd)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, frame)
	})
}

// InputHandler - нажатие на элемент управления игры
func InputHandler(e GameEngine) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev models.InputEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}
		if ev.UserID <= 0 || ev.ControlID == "" {
			http.Error(w, "user_id and control_id required", http.StatusBadRequest)
			return
		}

		frame, err := e.Input(r.Context(), ev)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, frame)
	})
}
