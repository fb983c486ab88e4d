package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

type TradeRepo struct {
	s *Store
}

func NewTradeRepo(s *Store) *TradeRepo {
	return &TradeRepo{s: s}
}

const tradeCols = `id,user_id,sub_account_id,ticker,quantity,entry_price,exit_price,direction,status,entry_date,exit_date,notes,commission,created_at,updated_at`

func (r *TradeRepo) Create(ctx context.Context, in TradeInput) (int64, error) {
	status := in.Status
	if status == "" {
		status = StatusOpen
	}
	entryDate := in.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now().UTC()
	}

	now := nowStamp()
	res, err := r.s.db.ExecContext(ctx, `
INSERT INTO trades (user_id,sub_account_id,ticker,quantity,entry_price,direction,status,entry_date,notes,commission,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
`, in.UserID, in.SubAccountID, in.Ticker, in.Quantity, in.EntryPrice, in.Direction, status,
		entryDate.UTC().Format(time.RFC3339Nano), in.Notes, in.Commission, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert trade: %w", classify(err))
	}
	return res.LastInsertId()
}

func (r *TradeRepo) GetByID(ctx context.Context, id int64) (*Trade, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+tradeCols+` FROM trades WHERE id=?`, id)
	t, err := scanTrade(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *TradeRepo) ListOpenByUser(ctx context.Context, userID int64) ([]Trade, error) {
	rows, err := r.s.db.QueryContext(ctx, `
SELECT `+tradeCols+`
FROM trades
WHERE user_id=? AND status='open'
ORDER BY entry_date ASC
`, userID)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

func (r *TradeRepo) ListClosedByUser(ctx context.Context, userID int64, limit, offset int) ([]Trade, error) {
	limit, offset = clampPage(limit, offset)
	rows, err := r.s.db.QueryContext(ctx, `
SELECT `+tradeCols+`
FROM trades
WHERE user_id=? AND status='closed'
ORDER BY exit_date DESC, entry_date DESC
LIMIT ? OFFSET ?
`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

// ListBySubAccount resolves the owning user first; a sub-account that no
// longer exists yields an empty result, not an error.
func (r *TradeRepo) ListBySubAccount(ctx context.Context, subAccountID int64, limit, offset int) ([]Trade, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT user_id FROM sub_accounts WHERE id=?`, subAccountID)
	var userID int64
	if err := row.Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []Trade{}, nil
		}
		return nil, err
	}

	limit, offset = clampPage(limit, offset)
	rows, err := r.s.db.QueryContext(ctx, `
SELECT `+tradeCols+`
FROM trades
WHERE sub_account_id=? AND user_id=?
ORDER BY exit_date DESC, entry_date DESC
LIMIT ? OFFSET ?
`, subAccountID, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

// Close transitions a trade open->closed. The guard lives in the WHERE
// clause: a trade that is already closed, or missing, affects zero rows and
// reports false without an error. Notes and commission coalesce to the
// stored value when not supplied.
func (r *TradeRepo) Close(ctx context.Context, p CloseParams) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `
UPDATE trades
SET exit_price=?, exit_date=?, status='closed',
    notes=COALESCE(?, notes), commission=COALESCE(?, commission), updated_at=?
WHERE id=? AND status='open'
`, p.ExitPrice, p.ExitDate.UTC().Format(time.RFC3339Nano), p.Notes, p.Commission, nowStamp(), p.ID)
	if err != nil {
		return false, fmt.Errorf("close trade: %w", classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// UpdateDetails merges only the supplied fields, regardless of trade
// status. With nothing to write it short-circuits without touching the
// store.
func (r *TradeRepo) UpdateDetails(ctx context.Context, id int64, notes *string, commission *float64) (bool, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if notes != nil {
		sets = append(sets, "notes=?")
		args = append(args, *notes)
	}
	if commission != nil {
		sets = append(sets, "commission=?")
		args = append(args, *commission)
	}
	if len(sets) == 0 {
		return false, nil
	}
	sets = append(sets, "updated_at=?")
	args = append(args, nowStamp(), id)

	res, err := r.s.db.ExecContext(ctx, `UPDATE trades SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return false, fmt.Errorf("update trade details: %w", classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *TradeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM trades WHERE id=?`, id)
	if err != nil {
		return false, fmt.Errorf("delete trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func collectTrades(rows *sql.Rows) ([]Trade, error) {
	defer rows.Close()
	out := []Trade{}
	for rows.Next() {
		t, err := scanTrade(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func scanTrade(scan func(...any) error) (*Trade, error) {
	var t Trade
	var subAccountID sql.NullInt64
	var exitPrice sql.NullFloat64
	var entryDate string
	var exitDate, notes sql.NullString
	var created, updated string
	if err := scan(&t.ID, &t.UserID, &subAccountID, &t.Ticker, &t.Quantity, &t.EntryPrice,
		&exitPrice, &t.Direction, &t.Status, &entryDate, &exitDate, &notes, &t.Commission,
		&created, &updated); err != nil {
		return nil, err
	}
	if subAccountID.Valid {
		v := subAccountID.Int64
		t.SubAccountID = &v
	}
	if exitPrice.Valid {
		v := exitPrice.Float64
		t.ExitPrice = &v
	}
	if exitDate.Valid {
		ts := parseStamp(exitDate.String)
		t.ExitDate = &ts
	}
	if notes.Valid {
		v := notes.String
		t.Notes = &v
	}
	t.EntryDate = parseStamp(entryDate)
	t.CreatedAt = parseStamp(created)
	t.UpdatedAt = parseStamp(updated)
	return &t, nil
}
