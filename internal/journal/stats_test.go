package journal

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealizedPL(t *testing.T) {
	exit := 110.0
	long := Trade{
		Status: StatusClosed, Direction: DirectionLong,
		Quantity: 10, EntryPrice: 100, ExitPrice: &exit, Commission: 2,
	}
	// (110-100)*10 - 2 = 98
	assert.True(t, RealizedPL(long).Equal(decimal.NewFromInt(98)), "got %s", RealizedPL(long))

	short := long
	short.Direction = DirectionShort
	// (100-110)*10 - 2 = -102
	assert.True(t, RealizedPL(short).Equal(decimal.NewFromInt(-102)), "got %s", RealizedPL(short))

	open := Trade{Status: StatusOpen, Direction: DirectionLong, Quantity: 10, EntryPrice: 100}
	assert.True(t, RealizedPL(open).IsZero())
}

func TestSummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	trades := NewTradeRepo(s)
	userID := seedUser(t, s, "alice", "alice@example.com")

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	winner, err := trades.Create(ctx, TradeInput{
		UserID: userID, Ticker: "W", Quantity: 10, EntryPrice: 100,
		Direction: DirectionLong, EntryDate: base,
	})
	require.NoError(t, err)
	ok, err := trades.Close(ctx, CloseParams{ID: winner, ExitPrice: 110, ExitDate: base.Add(time.Hour)})
	require.NoError(t, err)
	require.True(t, ok)

	loser, err := trades.Create(ctx, TradeInput{
		UserID: userID, Ticker: "L", Quantity: 5, EntryPrice: 50,
		Direction: DirectionShort, EntryDate: base, Commission: 1,
	})
	require.NoError(t, err)
	ok, err = trades.Close(ctx, CloseParams{ID: loser, ExitPrice: 54, ExitDate: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	require.True(t, ok)

	openTrade(t, s, userID, "O", base)

	sum, err := trades.Summary(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.OpenTrades)
	assert.Equal(t, 2, sum.ClosedTrades)
	assert.Equal(t, 1, sum.Wins)
	assert.Equal(t, 1, sum.Losses)
	assert.Equal(t, 0.5, sum.WinRate)
	// win: (110-100)*10 = 100; loss: (50-54)*5 - 1 = -21; net 79
	assert.True(t, sum.NetRealizedPL.Equal(decimal.NewFromInt(79)), "got %s", sum.NetRealizedPL)
	assert.True(t, sum.TotalCommission.Equal(decimal.NewFromInt(1)), "got %s", sum.TotalCommission)
}

func TestSummaryBySubAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	trades := NewTradeRepo(s)
	userID := seedUser(t, s, "alice", "alice@example.com")
	subID := seedSub(t, s, userID, "swing")

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := trades.Create(ctx, TradeInput{
		UserID: userID, SubAccountID: i64ptr(subID), Ticker: "A",
		Quantity: 2, EntryPrice: 10, Direction: DirectionLong, EntryDate: base,
	})
	require.NoError(t, err)
	ok, err := trades.Close(ctx, CloseParams{ID: id, ExitPrice: 15, ExitDate: base.Add(time.Hour)})
	require.NoError(t, err)
	require.True(t, ok)

	// A trade outside the sub-account must not count.
	openTrade(t, s, userID, "B", base)

	sum, err := trades.SummaryBySubAccount(ctx, subID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.ClosedTrades)
	assert.Equal(t, 0, sum.OpenTrades)
	assert.True(t, sum.NetRealizedPL.Equal(decimal.NewFromInt(10)), "got %s", sum.NetRealizedPL)

	// Absent sub-account: empty summary, no error.
	sum, err = trades.SummaryBySubAccount(ctx, 9999)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.ClosedTrades)
	assert.True(t, sum.NetRealizedPL.IsZero())
}
