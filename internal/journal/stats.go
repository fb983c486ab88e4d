package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PerformanceSummary aggregates realized results for a user or a single
// sub-account. Money math runs in decimal; float64 is only the row format.
type PerformanceSummary struct {
	OpenTrades      int             `json:"open_trades"`
	ClosedTrades    int             `json:"closed_trades"`
	Wins            int             `json:"wins"`
	Losses          int             `json:"losses"`
	WinRate         float64         `json:"win_rate"`
	NetRealizedPL   decimal.Decimal `json:"net_realized_pl"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}

// RealizedPL returns the realized profit of a closed trade net of
// commission; open trades realize nothing.
func RealizedPL(t Trade) decimal.Decimal {
	if t.Status != StatusClosed || t.ExitPrice == nil {
		return decimal.Zero
	}
	entry := decimal.NewFromFloat(t.EntryPrice)
	exit := decimal.NewFromFloat(*t.ExitPrice)
	gross := exit.Sub(entry)
	if t.Direction == DirectionShort {
		gross = entry.Sub(exit)
	}
	return gross.Mul(decimal.NewFromFloat(t.Quantity)).Sub(decimal.NewFromFloat(t.Commission))
}

func (r *TradeRepo) Summary(ctx context.Context, userID int64) (*PerformanceSummary, error) {
	return r.summarize(ctx, `user_id=?`, userID)
}

// SummaryBySubAccount scopes the aggregation to one sub-account; an absent
// sub-account yields an empty summary.
func (r *TradeRepo) SummaryBySubAccount(ctx context.Context, subAccountID int64) (*PerformanceSummary, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT user_id FROM sub_accounts WHERE id=?`, subAccountID)
	var userID int64
	if err := row.Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &PerformanceSummary{NetRealizedPL: decimal.Zero, TotalCommission: decimal.Zero}, nil
		}
		return nil, err
	}
	return r.summarize(ctx, `sub_account_id=? AND user_id=?`, subAccountID, userID)
}

func (r *TradeRepo) summarize(ctx context.Context, where string, args ...any) (*PerformanceSummary, error) {
	rows, err := r.s.db.QueryContext(ctx, `
SELECT `+tradeCols+`
FROM trades
WHERE `+where+`
ORDER BY entry_date ASC
`, args...)
	if err != nil {
		return nil, fmt.Errorf("summary query: %w", err)
	}
	trades, err := collectTrades(rows)
	if err != nil {
		return nil, err
	}

	sum := &PerformanceSummary{NetRealizedPL: decimal.Zero, TotalCommission: decimal.Zero}
	for _, t := range trades {
		sum.TotalCommission = sum.TotalCommission.Add(decimal.NewFromFloat(t.Commission))
		if t.Status != StatusClosed {
			sum.OpenTrades++
			continue
		}
		sum.ClosedTrades++
		pl := RealizedPL(t)
		sum.NetRealizedPL = sum.NetRealizedPL.Add(pl)
		switch pl.Sign() {
		case 1:
			sum.Wins++
		case -1:
			sum.Losses++
		}
	}
	if sum.ClosedTrades > 0 {
		sum.WinRate = float64(sum.Wins) / float64(sum.ClosedTrades)
	}
	return sum, nil
}
