package journal

import "time"

const (
	DirectionLong  = "long"
	DirectionShort = "short"

	StatusOpen   = "open"
	StatusClosed = "closed"

	DefaultCurrency = "USD"
	DefaultTheme    = "light"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSettings is one-to-one with User and only ever created inside the
// user-creation transaction.
type UserSettings struct {
	UserID          int64     `json:"user_id"`
	DefaultCurrency string    `json:"default_currency"`
	Theme           string    `json:"theme"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SettingsDefaults carries caller overrides for the settings row created
// with a new user. Empty fields fall back to DefaultCurrency/DefaultTheme.
type SettingsDefaults struct {
	DefaultCurrency string `json:"default_currency"`
	Theme           string `json:"theme"`
}

type SubAccount struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Broker      *string   `json:"broker,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Trade struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	SubAccountID *int64     `json:"sub_account_id,omitempty"`
	Ticker       string     `json:"ticker"`
	Quantity     float64    `json:"quantity"`
	EntryPrice   float64    `json:"entry_price"`
	ExitPrice    *float64   `json:"exit_price,omitempty"`
	Direction    string     `json:"direction"`
	Status       string     `json:"status"`
	EntryDate    time.Time  `json:"entry_date"`
	ExitDate     *time.Time `json:"exit_date,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	Commission   float64    `json:"commission"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TradeInput is the create payload. Status defaults to open and EntryDate
// to the current time when zero.
type TradeInput struct {
	UserID       int64
	SubAccountID *int64
	Ticker       string
	Quantity     float64
	EntryPrice   float64
	Direction    string
	Status       string
	EntryDate    time.Time
	Notes        *string
	Commission   float64
}

// CloseParams drives the open->closed transition. Notes and Commission are
// coalesce-to-existing: a nil pointer keeps the stored value.
type CloseParams struct {
	ID         int64
	ExitPrice  float64
	ExitDate   time.Time
	Notes      *string
	Commission *float64
}
