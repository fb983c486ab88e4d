package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Migrate applies the schema. Safe to run on every start: tables and
// indexes are created only when absent.
func (s *Store) Migrate() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`,
		`
CREATE TABLE IF NOT EXISTS user_settings (
  user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  default_currency TEXT NOT NULL DEFAULT 'USD',
  theme TEXT NOT NULL DEFAULT 'light',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`,
		`
CREATE TABLE IF NOT EXISTS sub_accounts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  description TEXT,
  broker TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  UNIQUE (user_id, name)
);`,
		`
CREATE TABLE IF NOT EXISTS trades (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  sub_account_id INTEGER REFERENCES sub_accounts(id) ON DELETE SET NULL,
  ticker TEXT NOT NULL,
  quantity REAL NOT NULL CHECK (quantity > 0),
  entry_price REAL NOT NULL,
  exit_price REAL,
  direction TEXT NOT NULL CHECK (direction IN ('long','short')),
  status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open','closed')),
  entry_date TEXT NOT NULL,
  exit_date TEXT,
  notes TEXT,
  commission REAL NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);`,
		`CREATE INDEX IF NOT EXISTS idx_sub_accounts_user ON sub_accounts(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_trades_user ON trades(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_trades_sub_account ON trades(sub_account_id);`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ticker ON trades(ticker);`,
		`CREATE INDEX IF NOT EXISTS idx_trades_entry_date ON trades(entry_date);`,
		`CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);`,
	}

	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate exec failed: %w", err)
		}
	}

	// Databases created before commissions were tracked lack the column
	// (SQLite has no ADD COLUMN IF NOT EXISTS).
	hasCol, err := hasColumn(ctx, s.db, "trades", "commission")
	if err != nil {
		return err
	}
	if !hasCol {
		if _, err := s.db.ExecContext(ctx, `ALTER TABLE trades ADD COLUMN commission REAL NOT NULL DEFAULT 0;`); err != nil {
			return fmt.Errorf("alter trades add commission: %w", err)
		}
	}

	return nil
}

func hasColumn(ctx context.Context, db *sql.DB, table string, col string) (bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s);`, table))
	if err != nil {
		return false, err
	}
	defer rows.Close()
	// PRAGMA table_info columns: cid,name,type,notnull,dflt_value,pk
	for rows.Next() {
		var (
			cid       int
			name      string
			typ       string
			notnull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == col {
			return true, nil
		}
	}
	return false, rows.Err()
}
