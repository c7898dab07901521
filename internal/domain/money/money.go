package money

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrInvalidPercent  = errors.New("percent must be between 0 and 100")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Cents is a monetary amount in minor units of the booking currency.
// Every amount the engine compares or persists is a Cents value, so equality
// checks between gateway captures and booking plans are exact.
type Cents int64

// Major returns the amount in major units (e.g. 12.34 for 1234 cents), for
// gateways that price items with decimals.
func (c Cents) Major() float64 {
	return float64(c) / 100
}

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// FromMajor converts a decimal amount into cents, rounding half away from zero.
func FromMajor(v float64) Cents {
	return Cents(math.Round(v * 100))
}

// Deposit returns round-half-up(total * percent / 100).
func Deposit(total Cents, percent int) (Cents, error) {
	if total < 0 {
		return 0, ErrNegativeAmount
	}
	if percent < 0 || percent > 100 {
		return 0, ErrInvalidPercent
	}
	return Cents((int64(total)*int64(percent) + 50) / 100), nil
}

// Split divides total into a deposit and the remaining balance. The two parts
// always add back up to total.
func Split(total Cents, percent int) (deposit, balance Cents, err error) {
	deposit, err = Deposit(total, percent)
	if err != nil {
		return 0, 0, err
	}
	return deposit, total - deposit, nil
}

// LineTotal is quantity * unitPrice for a single priced line.
func LineTotal(quantity int, unitPrice Cents) (Cents, error) {
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return 0, ErrNegativeAmount
	}
	return Cents(int64(quantity) * int64(unitPrice)), nil
}

func Sum(amounts ...Cents) Cents {
	var total Cents
	for _, a := range amounts {
		total += a
	}
	return total
}
