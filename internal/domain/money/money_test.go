package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_PartsAddUpToTotal(t *testing.T) {
	totals := []Cents{0, 1, 2, 3, 7, 99, 100, 101, 999, 1000, 12345, 99999, 1_000_000, 123_456_789}
	for _, total := range totals {
		for pct := 0; pct <= 100; pct++ {
			deposit, balance, err := Split(total, pct)
			require.NoError(t, err)
			assert.Equal(t, total, deposit+balance, "total=%d pct=%d", total, pct)
			assert.GreaterOrEqual(t, int64(deposit), int64(0))
			assert.GreaterOrEqual(t, int64(balance), int64(0))
			assert.LessOrEqual(t, int64(deposit), int64(total))
		}
	}
}

func TestDeposit(t *testing.T) {
	cases := []struct {
		name    string
		total   Cents
		percent int
		want    Cents
	}{
		{name: "thirty percent of 1000", total: 1000, percent: 30, want: 300},
		{name: "zero percent", total: 1000, percent: 0, want: 0},
		{name: "full percent", total: 1000, percent: 100, want: 1000},
		{name: "rounds half up", total: 5, percent: 50, want: 3},
		{name: "rounds down below half", total: 1, percent: 49, want: 0},
		{name: "rounds up at half", total: 1, percent: 50, want: 1},
		{name: "odd total", total: 333, percent: 30, want: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Deposit(tc.total, tc.percent)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDeposit_InvalidInput(t *testing.T) {
	_, err := Deposit(-1, 30)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = Deposit(100, 101)
	assert.ErrorIs(t, err, ErrInvalidPercent)

	_, err = Deposit(100, -1)
	assert.ErrorIs(t, err, ErrInvalidPercent)
}

func TestLineTotal(t *testing.T) {
	got, err := LineTotal(3, 250)
	require.NoError(t, err)
	assert.Equal(t, Cents(750), got)

	_, err = LineTotal(0, 250)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = LineTotal(1, -5)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestCentsConversions(t *testing.T) {
	assert.Equal(t, "12.34", Cents(1234).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-1.50", Cents(-150).String())
	assert.Equal(t, Cents(1999), FromMajor(19.99))
	assert.InDelta(t, 19.99, Cents(1999).Major(), 0.0001)
	assert.Equal(t, Cents(600), Sum(100, 200, 300))
}
