package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SubAccountRepo struct {
	s *Store
}

func NewSubAccountRepo(s *Store) *SubAccountRepo {
	return &SubAccountRepo{s: s}
}

func (r *SubAccountRepo) Create(ctx context.Context, userID int64, name string, description *string) (int64, error) {
	now := nowStamp()
	res, err := r.s.db.ExecContext(ctx, `
INSERT INTO sub_accounts (user_id,name,description,created_at,updated_at)
VALUES (?,?,?,?,?)
`, userID, name, description, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert sub_account: %w", classify(err))
	}
	return res.LastInsertId()
}

func (r *SubAccountRepo) GetByID(ctx context.Context, id int64) (*SubAccount, error) {
	row := r.s.db.QueryRowContext(ctx, `
SELECT id,user_id,name,description,broker,created_at,updated_at
FROM sub_accounts WHERE id=?
`, id)
	sa, err := scanSubAccount(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sa, nil
}

func (r *SubAccountRepo) ListByUser(ctx context.Context, userID int64) ([]SubAccount, error) {
	rows, err := r.s.db.QueryContext(ctx, `
SELECT id,user_id,name,description,broker,created_at,updated_at
FROM sub_accounts WHERE user_id=?
ORDER BY name ASC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SubAccount{}
	for rows.Next() {
		sa, err := scanSubAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *sa)
	}
	return out, rows.Err()
}

// Update overwrites all three mutable fields; a nil description or broker
// clears the stored value. This is intentionally not a merge.
func (r *SubAccountRepo) Update(ctx context.Context, id int64, name string, description, broker *string) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `
UPDATE sub_accounts
SET name=?, description=?, broker=?, updated_at=?
WHERE id=?
`, name, description, broker, nowStamp(), id)
	if err != nil {
		return false, fmt.Errorf("update sub_account: %w", classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SubAccountRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM sub_accounts WHERE id=?`, id)
	if err != nil {
		return false, fmt.Errorf("delete sub_account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanSubAccount(scan func(...any) error) (*SubAccount, error) {
	var sa SubAccount
	var description, broker sql.NullString
	var created, updated string
	if err := scan(&sa.ID, &sa.UserID, &sa.Name, &description, &broker, &created, &updated); err != nil {
		return nil, err
	}
	if description.Valid {
		v := description.String
		sa.Description = &v
	}
	if broker.Valid {
		v := broker.String
		sa.Broker = &v
	}
	sa.CreatedAt = parseStamp(created)
	sa.UpdatedAt = parseStamp(updated)
	return &sa, nil
}
