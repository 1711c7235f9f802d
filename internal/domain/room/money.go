package room

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"meetingroom/internal/pkg/apperror"
)

const DefaultCurrency = "KRW"

// Money is an amount in minor units of a single currency.
type Money struct {
	amount   int64
	currency string
}

func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, apperror.Validation("amount cannot be negative")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Money{}, apperror.Validation("currency is required")
	}
	return Money{amount: amount, currency: currency}, nil
}

func (m Money) Amount() int64    { return m.amount }
func (m Money) Currency() string { return m.currency }

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

func (m Money) Multiply(n int) Money {
	return Money{amount: m.amount * int64(n), currency: m.currency}
}

func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.amount > other.amount, nil
}

func (m Money) Equal(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// Format renders the amount with thousands grouping, e.g. "10,000 KRW".
func (m Money) Format() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d %s", m.amount, m.currency)
}

func (m Money) String() string { return m.Format() }

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return apperror.Validation("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		Formatted string `json:"formatted"`
	}{m.amount, m.currency, m.Format()})
}
