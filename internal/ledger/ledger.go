package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/storage"
	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker"
)

// Accounts - операции над счетами пользователей
type Accounts interface {
	GetAccount(ctx context.Context, userID int64) (*models.Account, error)
	AdjustMoney(ctx context.Context, userID int64, delta int64) (*models.Account, error)
	AdjustCredits(ctx context.Context, userID int64, delta int64) (*models.Account, error)
	SetMoney(ctx context.Context, userID int64, value int64) (*models.Account, error)
	SetCredits(ctx context.Context, userID int64, value int64) (*models.Account, error)
	Transfer(ctx context.Context, userID int64, moneyDelta int64, creditsDelta int64) (*models.Account, error)
	RedeemReserveUnit(ctx context.Context, userID int64) (*models.Account, bool, error)
	TopAccounts(ctx context.Context, n int) ([]models.Account, error)
	RemoveAccount(ctx context.Context, userID int64) error
}

type Ledger struct {
	Storage       storage.AccountsStorage
	Breaker       *gobreaker.CircuitBreaker
	Attempts      int
	BaseDelay     time.Duration
	ReserveBounty int64
}

func InitCircuitBreaker(cfg config.StorageConfig) *gobreaker.CircuitBreaker {
	failures := uint32(cfg.BreakerFailures)
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "accounts-store",
		Timeout: cfg.BreakerOpenDelay,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return failures > 0 && counts.ConsecutiveFailures >= failures
		},
		// ошибки валидации и нехватка средств не говорят о состоянии хранилища
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrStore)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnw("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// Создание реестра счетов
func NewLedger(storage storage.AccountsStorage, cfg config.StorageConfig, reserveBounty int64) *Ledger {
	return &Ledger{
		Storage:       storage,
		Breaker:       InitCircuitBreaker(cfg),
		Attempts:      cfg.RetryAttempts,
		BaseDelay:     cfg.RetryBaseDelay,
		ReserveBounty: reserveBounty,
	}
}

// backoff - задержки между попытками: base, 2*base, 4*base...
func (l *Ledger) backoff() retry.Backoff {
	base := l.BaseDelay
	if base <= 0 {
		base = time.Millisecond
	}
	attempts := l.Attempts
	if attempts < 1 {
		attempts = 1
	}
	return retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(base))
}

// execute - вызов хранилища через автомат отключения и политику повторов.
// Повторяется только конфликт записи, прочие ошибки хранилища сразу становятся StoreError.
func execute[T any](l *Ledger, ctx context.Context, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var nilT T
	res, err := l.Breaker.Execute(func() (interface{}, error) {
		attempts := 0
		v, err := retry.DoValue(ctx, l.backoff(), func(ctx context.Context) (T, error) {
			attempts++
			v, err := fn(ctx)
			if err != nil && errors.Is(err, storage.ErrWriteConflict) {
				logger.Warnw("accounts store busy", "op", op, "attempt", attempts, "error", err.Error())
				return v, retry.RetryableError(err)
			}
			return v, err
		})
		if err != nil && !isCallerError(err) {
			storeErr := &StoreError{Op: op, Attempts: attempts, Err: err}
			logger.Error("accounts store failed:", storeErr.Error())
			return nil, storeErr
		}
		return v, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nilT, &StoreError{Op: op, Err: err}
		}
		return nilT, err
	}
	v, _ := res.(T)
	return v, nil
}

// isCallerError - ошибка вызывающей стороны, а не хранилища
func isCallerError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, storage.ErrAccountNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (l *Ledger) update(ctx context.Context, op string, userID int64, fn storage.MutateFunc) (*models.Account, error) {
	return execute(l, ctx, op, func(ctx context.Context) (*models.Account, error) {
		return l.Storage.UpdateAccount(ctx, userID, fn)
	})
}

// add - сумма баланса и изменения; выход за пределы int64 отклоняется
func add(field string, v, delta int64) (int64, error) {
	sum := v + delta
	if (delta > 0 && sum < v) || (delta < 0 && sum > v) {
		return 0, InvalidArgument("%s overflow: %d%+d", field, v, delta)
	}
	return sum, nil
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// GetAccount - счёт пользователя, при отсутствии создаётся со значениями по умолчанию
func (l *Ledger) GetAccount(ctx context.Context, userID int64) (*models.Account, error) {
	return execute(l, ctx, "GetAccount", func(ctx context.Context) (*models.Account, error) {
		return l.Storage.GetAccount(ctx, userID)
	})
}

// AdjustMoney - изменение денег на delta, результат не опускается ниже нуля
func (l *Ledger) AdjustMoney(ctx context.Context, userID int64, delta int64) (*models.Account, error) {
	return l.update(ctx, "AdjustMoney", userID, func(acc *models.Account) error {
		money, err := add("money", acc.Money, delta)
		if err != nil {
			return err
		}
		acc.Money = clamp(money)
		return nil
	})
}

// AdjustCredits - изменение кредитов на delta, результат не опускается ниже нуля
func (l *Ledger) AdjustCredits(ctx context.Context, userID int64, delta int64) (*models.Account, error) {
	return l.update(ctx, "AdjustCredits", userID, func(acc *models.Account) error {
		credits, err := add("credits", acc.Credits, delta)
		if err != nil {
			return err
		}
		acc.Credits = clamp(credits)
		return nil
	})
}

func (l *Ledger) SetMoney(ctx context.Context, userID int64, value int64) (*models.Account, error) {
	if value < 0 {
		return nil, InvalidArgument("money must not be negative, got %d", value)
	}
	return l.update(ctx, "SetMoney", userID, func(acc *models.Account) error {
		acc.Money = value
		return nil
	})
}

func (l *Ledger) SetCredits(ctx context.Context, userID int64, value int64) (*models.Account, error) {
	if value < 0 {
		return nil, InvalidArgument("credits must not be negative, got %d", value)
	}
	return l.update(ctx, "SetCredits", userID, func(acc *models.Account) error {
		acc.Credits = value
		return nil
	})
}

// Transfer - одновременное изменение денег и кредитов; отказ, если какое-либо поле уйдёт в минус или за пределы int64
func (l *Ledger) Transfer(ctx context.Context, userID int64, moneyDelta int64, creditsDelta int64) (*models.Account, error) {
	return l.update(ctx, "Transfer", userID, func(acc *models.Account) error {
		money, err := add("money", acc.Money, moneyDelta)
		if err != nil {
			return err
		}
		credits, err := add("credits", acc.Credits, creditsDelta)
		if err != nil {
			return err
		}
		if money < 0 {
			return &InsufficientFundsError{Current: acc.Money, Requested: -moneyDelta}
		}
		if credits < 0 {
			return &InsufficientFundsError{Current: acc.Credits, Requested: -creditsDelta}
		}
		acc.Money = money
		acc.Credits = credits
		return nil
	})
}

// RedeemReserveUnit - обмен одной резервной единицы на вознаграждение.
// При нуле единиц счёт не меняется и возвращается false.
func (l *Ledger) RedeemReserveUnit(ctx context.Context, userID int64) (*models.Account, bool, error) {
	redeemed := false
	acc, err := l.update(ctx, "RedeemReserveUnit", userID, func(acc *models.Account) error {
		redeemed = false
		if acc.ReserveUnits <= 0 {
			acc.ReserveUnits = 0
			return nil
		}
		money, err := add("money", acc.Money, l.ReserveBounty)
		if err != nil {
			return err
		}
		acc.ReserveUnits--
		acc.Money = money
		redeemed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return acc, redeemed, nil
}

// TopAccounts - счета по убыванию денег; n <= 0 возвращает все
func (l *Ledger) TopAccounts(ctx context.Context, n int) ([]models.Account, error) {
	return execute(l, ctx, "TopAccounts", func(ctx context.Context) ([]models.Account, error) {
		return l.Storage.TopAccounts(ctx, n)
	})
}

func (l *Ledger) RemoveAccount(ctx context.Context, userID int64) error {
	_, err := execute(l, ctx, "RemoveAccount", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, l.Storage.DeleteAccount(ctx, userID)
	})
	return err
}
