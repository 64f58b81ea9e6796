package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/services"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/validators"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// URLParamUserID - имя параметра маршрута с идентификатором пользователя
const URLParamUserID = "userID"

// userIDParam - идентификатор пользователя из маршрута; при ошибке ответ уже записан
func userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := validators.ParseUserID(chi.URLParam(r, URLParamUserID))
	if err != nil {
		logger.Warn("Invalid user id:", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return userID, true
}

// GetAccountHandler - баланс пользователя
func GetAccountHandler(s services.EconomyService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDParam(w, r)
		if !ok {
			return
		}
		balance, err := s.Balance(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, balance)
	})
}

// WorkHandler - бонус за работу
func WorkHandler(s services.EconomyService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDParam(w, r)
		if !ok {
			return
		}
		acc, bonus, err := s.Work(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, models.WorkResponse{Bonus: bonus, Account: models.NewAccountResponse(acc)})
	})
}

// ExchangeHandler - покупка (buy=true) или продажа кредитов
func ExchangeHandler(s services.EconomyService, buy bool) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDParam(w, r)
		if !ok {
			return
		}
		var req models.AmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		exchange := s.SellCredits
		if buy {
			exchange = s.BuyCredits
		}
		acc, err := exchange(r.Context(), userID, req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, models.NewAccountResponse(acc))
	})
}

// RedeemHandler - продажа единицы резерва
func RedeemHandler(s services.EconomyService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDParam(w, r)
		if !ok {
			return
		}
		acc, redeemed, err := s.SellReserveUnit(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, models.RedeemResponse{Redeemed: redeemed, Account: models.NewAccountResponse(acc)})
	})
}

// LeaderboardHandler - таблица лидеров, размер задаётся параметром n
func LeaderboardHandler(s services.EconomyService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n, err := validators.ParseLimit(r.URL.Query().Get("n"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		entries, err := s.Leaderboard(r.Context(), n)
		if err != nil {
			writeError(w, err)
			return
		}
		if len(entries) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	})
}
