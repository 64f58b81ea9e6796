package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"golang.org/x/time/rate"
)

// DefaultLeaderboardSize - размер таблицы лидеров, если он не задан
const DefaultLeaderboardSize = 5

// ErrCooldown - бонус за работу ещё недоступен
var ErrCooldown = errors.New("work bonus is on cooldown")

// CooldownError - через сколько можно снова получить бонус
type CooldownError struct {
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("work bonus is on cooldown, retry after %s", e.RetryAfter.Round(time.Second))
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldown
}

type EconomyService interface {
	Balance(ctx context.Context, userID int64) (*models.AccountResponse, error)
	Work(ctx context.Context, userID int64) (*models.Account, int64, error)
	BuyCredits(ctx context.Context, userID int64, amount int64) (*models.Account, error)
	SellCredits(ctx context.Context, userID int64, amount int64) (*models.Account, error)
	SellReserveUnit(ctx context.Context, userID int64) (*models.Account, bool, error)
	Leaderboard(ctx context.Context, n int) ([]models.LeaderboardEntry, error)
	SetBalance(ctx context.Context, userID int64, req models.BalanceRequest) (*models.Account, error)
	RemoveAccount(ctx context.Context, userID int64) error
}

type Economy struct {
	Accounts ledger.Accounts
	Config   config.EconomyConfig

	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	now      func() time.Time
}

// Создание сервиса
func NewEconomy(accounts ledger.Accounts, cfg config.EconomyConfig) *Economy {
	return &Economy{
		Accounts: accounts,
		Config:   cfg,
		limiters: make(map[int64]*rate.Limiter),
		now:      time.Now,
	}
}

// Balance возвращает деньги, кредиты и резерв пользователя
func (s *Economy) Balance(ctx context.Context, userID int64) (*models.AccountResponse, error) {
	acc, err := s.Accounts.GetAccount(ctx, userID)
	if err != nil {
		logger.Error("Failed to get account", userID, err)
		return nil, err
	}
	balance := models.NewAccountResponse(acc)
	return &balance, nil
}

// limiter - ограничитель бонуса пользователя: один токен на период отката
func (s *Economy) limiter(userID int64) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[userID]
	if !ok {
		l = rate.NewLimiter(rate.Every(s.Config.BonusCooldown), 1)
		s.limiters[userID] = l
	}
	return l
}

// Work начисляет бонус DefaultBet*BonusMultiplier не чаще раза за период отката
func (s *Economy) Work(ctx context.Context, userID int64) (*models.Account, int64, error) {
	bonus := s.Config.DefaultBet * s.Config.BonusMultiplier

	now := s.now()
	var reservation *rate.Reservation
	if s.Config.BonusCooldown > 0 {
		reservation = s.limiter(userID).ReserveN(now, 1)
		if delay := reservation.DelayFrom(now); delay > 0 {
			reservation.CancelAt(now)
			logger.Infow("work bonus refused", "user", userID, "retry_after", delay.String())
			return nil, 0, &CooldownError{RetryAfter: delay}
		}
	}

	acc, err := s.Accounts.AdjustMoney(ctx, userID, bonus)
	if err != nil {
		// неудачное начисление не сжигает бонус
		if reservation != nil {
			reservation.CancelAt(now)
		}
		logger.Error("Failed to grant work bonus", userID, err)
		return nil, 0, err
	}
	logger.Infow("work bonus granted", "user", userID, "bonus", bonus, "money", acc.Money)
	return acc, bonus, nil
}

// checkAmount - число кредитов положительно, а его цена в деньгах помещается в int64
func (s *Economy) checkAmount(amount int64) error {
	if amount <= 0 {
		return ledger.InvalidArgument("amount must be positive, got %d", amount)
	}
	if bet := s.Config.DefaultBet; bet > 0 && amount > math.MaxInt64/bet {
		return ledger.InvalidArgument("amount must be at most %d, got %d", math.MaxInt64/bet, amount)
	}
	return nil
}

// BuyCredits обмен денег на кредиты по курсу DefaultBet за кредит
func (s *Economy) BuyCredits(ctx context.Context, userID int64, amount int64) (*models.Account, error) {
	if err := s.checkAmount(amount); err != nil {
		return nil, err
	}
	acc, err := s.Accounts.Transfer(ctx, userID, -amount*s.Config.DefaultBet, amount)
	if err != nil {
		logger.Warn("Buy credits refused", userID, err)
		return nil, err
	}
	logger.Infow("credits bought", "user", userID, "credits", amount, "money", acc.Money)
	return acc, nil
}

// SellCredits обратный обмен кредитов на деньги
func (s *Economy) SellCredits(ctx context.Context, userID int64, amount int64) (*models.Account, error) {
	if err := s.checkAmount(amount); err != nil {
		return nil, err
	}
	acc, err := s.Accounts.Transfer(ctx, userID, amount*s.Config.DefaultBet, -amount)
	if err != nil {
		logger.Warn("Sell credits refused", userID, err)
		return nil, err
	}
	logger.Infow("credits sold", "user", userID, "credits", amount, "money", acc.Money)
	return acc, nil
}

// SellReserveUnit продажа единицы резерва; false, если резерв исчерпан
func (s *Economy) SellReserveUnit(ctx context.Context, userID int64) (*models.Account, bool, error) {
	acc, redeemed, err := s.Accounts.RedeemReserveUnit(ctx, userID)
	if err != nil {
		logger.Error("Failed to redeem reserve unit", userID, err)
		return nil, false, err
	}
	if redeemed {
		logger.Infow("reserve unit redeemed", "user", userID, "left", acc.ReserveUnits, "money", acc.Money)
	}
	return acc, redeemed, nil
}

// Leaderboard первые n счетов по деньгам
func (s *Economy) Leaderboard(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	if n <= 0 {
		n = DefaultLeaderboardSize
	}
	accounts, err := s.Accounts.TopAccounts(ctx, n)
	if err != nil {
		logger.Error("Failed to get leaderboard", err)
		return nil, err
	}
	entries := make([]models.LeaderboardEntry, 0, len(accounts))
	for i, acc := range accounts {
		entries = append(entries, models.LeaderboardEntry{Place: i + 1, UserID: acc.UserID, Money: acc.Money})
	}
	return entries, nil
}

// SetBalance установка баланса администратором; незаданные поля не меняются
func (s *Economy) SetBalance(ctx context.Context, userID int64, req models.BalanceRequest) (*models.Account, error) {
	if req.Money == nil && req.Credits == nil {
		return nil, ledger.InvalidArgument("money or credits required")
	}
	var (
		acc *models.Account
		err error
	)
	if req.Money != nil {
		if acc, err = s.Accounts.SetMoney(ctx, userID, *req.Money); err != nil {
			return nil, err
		}
	}
	if req.Credits != nil {
		if acc, err = s.Accounts.SetCredits(ctx, userID, *req.Credits); err != nil {
			return nil, err
		}
	}
	logger.Infow("balance set", "user", userID, "money", acc.Money, "credits", acc.Credits)
	return acc, nil
}

// RemoveAccount удаление счёта администратором
func (s *Economy) RemoveAccount(ctx context.Context, userID int64) error {
	if err := s.Accounts.RemoveAccount(ctx, userID); err != nil {
		logger.Warn("Failed to remove account", userID, err)
		return err
	}
	s.mu.Lock()
	delete(s.limiters, userID)
	s.mu.Unlock()
	logger.Infow("account removed", "user", userID)
	return nil
}
