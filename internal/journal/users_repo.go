package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type UserRepo struct {
	s *Store
}

func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (int64, error) {
	now := nowStamp()
	res, err := r.s.db.ExecContext(ctx, `
INSERT INTO users (username,email,password_hash,created_at,updated_at)
VALUES (?,?,?,?,?)
`, username, email, passwordHash, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", classify(err))
	}
	return res.LastInsertId()
}

// CreateWithSettings inserts the user and its settings row in one
// transaction. Either both rows land or neither does; the constraint error
// that aborted the transaction propagates after rollback.
func (r *UserRepo) CreateWithSettings(ctx context.Context, username, email, passwordHash string, defaults SettingsDefaults) (int64, error) {
	currency := defaults.DefaultCurrency
	if currency == "" {
		currency = DefaultCurrency
	}
	theme := defaults.Theme
	if theme == "" {
		theme = DefaultTheme
	}

	now := nowStamp()
	var id int64
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO users (username,email,password_hash,created_at,updated_at)
VALUES (?,?,?,?,?)
`, username, email, passwordHash, now, now)
		if err != nil {
			return fmt.Errorf("insert user: %w", classify(err))
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("user insert id: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO user_settings (user_id,default_currency,theme,created_at,updated_at)
VALUES (?,?,?,?,?)
`, id, currency, theme, now, now); err != nil {
			return fmt.Errorf("insert settings: %w", classify(err))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.one(ctx, `id=?`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.one(ctx, `email=?`, email)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.one(ctx, `username=?`, username)
}

func (r *UserRepo) one(ctx context.Context, where string, arg any) (*User, error) {
	row := r.s.db.QueryRowContext(ctx, `
SELECT id,username,email,password_hash,created_at,updated_at
FROM users WHERE `+where, arg)
	var u User
	var created, updated string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt = parseStamp(created)
	u.UpdatedAt = parseStamp(updated)
	return &u, nil
}

func (r *UserRepo) GetSettings(ctx context.Context, userID int64) (*UserSettings, error) {
	row := r.s.db.QueryRowContext(ctx, `
SELECT user_id,default_currency,theme,created_at,updated_at
FROM user_settings WHERE user_id=?
`, userID)
	var st UserSettings
	var created, updated string
	if err := row.Scan(&st.UserID, &st.DefaultCurrency, &st.Theme, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	st.CreatedAt = parseStamp(created)
	st.UpdatedAt = parseStamp(updated)
	return &st, nil
}
