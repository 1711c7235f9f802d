package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) CompleteFinished(ctx context.Context, grace time.Duration) (int, error) {
	args := m.Called(ctx, grace)
	return args.Int(0), args.Error(1)
}

func TestRegisterCompletionSweep(t *testing.T) {
	c := cron.New()
	id, err := RegisterCompletionSweep(c, "*/15 * * * *", time.Hour, &MockCompleter{})
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	assert.Equal(t, id, c.Entries()[0].ID)

	_, err = RegisterCompletionSweep(c, "every now and then", time.Hour, &MockCompleter{})
	assert.Error(t, err)
}

func TestRunCompletionSweep(t *testing.T) {
	ok := &MockCompleter{}
	ok.On("CompleteFinished", mock.Anything, 2*time.Hour).Return(3, nil)
	assert.Equal(t, 3, runCompletionSweep(context.Background(), ok, 2*time.Hour))
	ok.AssertExpectations(t)

	failing := &MockCompleter{}
	failing.On("CompleteFinished", mock.Anything, time.Duration(0)).Return(0, errors.New("db down"))
	assert.Equal(t, 0, runCompletionSweep(context.Background(), failing, 0))
}
