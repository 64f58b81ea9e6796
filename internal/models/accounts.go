package models

// Значения счёта по умолчанию
const (
	DefaultReserveUnits int64 = 2
	MaxReserveUnits     int64 = 2
)

// Account - модель счёта пользователя из хранилища
type Account struct {
	UserID       int64 `json:"user_id"`
	Money        int64 `json:"money"`
	Credits      int64 `json:"credits"`
	ReserveUnits int64 `json:"reserve_units"`
}

// NewAccount - счёт, создаваемый при первом обращении пользователя
func NewAccount(userID int64) *Account {
	return &Account{UserID: userID, ReserveUnits: DefaultReserveUnits}
}

// AccountResponse - модель баланса пользователя для выдачи
type AccountResponse struct {
	UserID       int64 `json:"user_id"`
	Money        int64 `json:"money"`
	Credits      int64 `json:"credits"`
	ReserveUnits int64 `json:"reserve_units"`
}

// NewAccountResponse - баланс для выдачи по модели счёта
func NewAccountResponse(acc *Account) AccountResponse {
	return AccountResponse{
		UserID:       acc.UserID,
		Money:        acc.Money,
		Credits:      acc.Credits,
		ReserveUnits: acc.ReserveUnits,
	}
}

// WorkResponse - начисленный бонус и новый баланс
type WorkResponse struct {
	Bonus   int64           `json:"bonus"`
	Account AccountResponse `json:"account"`
}

// RedeemResponse - результат продажи единицы резерва
type RedeemResponse struct {
	Redeemed bool            `json:"redeemed"`
	Account  AccountResponse `json:"account"`
}

// LeaderboardEntry - позиция в таблице лидеров
type LeaderboardEntry struct {
	Place  int   `json:"place"`
	UserID int64 `json:"user_id"`
	Money  int64 `json:"money"`
}

// BalanceRequest - запрос администратора на установку баланса
type BalanceRequest struct {
	Money   *int64 `json:"money,omitempty"`
	Credits *int64 `json:"credits,omitempty"`
}

// AmountRequest - запрос покупки/продажи кредитов
type AmountRequest struct {
	Amount int64 `json:"amount"`
}
