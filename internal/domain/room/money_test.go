package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingroom/internal/pkg/apperror"
)

func krw(t *testing.T, amount int64) Money {
	t.Helper()
	m, err := NewMoney(amount, "krw")
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	m := krw(t, 5000)
	assert.Equal(t, int64(5000), m.Amount())
	assert.Equal(t, "KRW", m.Currency())

	_, err := NewMoney(-1, "KRW")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = NewMoney(100, " ")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	usd, err := NewMoney(100, "USD")
	require.NoError(t, err)

	_, err = krw(t, 100).Add(usd)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = krw(t, 100).IsGreaterThan(usd)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestMoneyArithmetic(t *testing.T) {
	m := krw(t, 5000)

	sum, err := m.Add(krw(t, 2500))
	require.NoError(t, err)
	assert.True(t, sum.Equal(krw(t, 7500)))

	gt, err := sum.IsGreaterThan(m)
	require.NoError(t, err)
	assert.True(t, gt)

	for a := 0; a <= 4; a++ {
		for b := 0; b <= 4; b++ {
			assert.True(t, m.Multiply(a).Multiply(b).Equal(m.Multiply(a*b)), "a=%d b=%d", a, b)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	assert.Equal(t, "10,000 KRW", krw(t, 10000).Format())
	assert.Equal(t, "0 KRW", krw(t, 0).Format())
}
