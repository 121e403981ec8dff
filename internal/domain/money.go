package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MoneyFromMinor converts an amount in minor units (paise, cents) using the
// currency's standard scale.
func MoneyFromMinor(amount int64, unit currency.Unit) Money {
	scale, _ := currency.Standard.Rounding(unit)

	return Money{
		Amount:   decimal.New(amount, -int32(scale)),
		Currency: unit,
	}
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}
