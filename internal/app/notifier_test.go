package app

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTelegramClient struct {
	mock.Mock
}

func (m *MockTelegramClient) SendMessage(chatID string, text string) error {
	args := m.Called(chatID, text)
	return args.Error(0)
}

func TestNotifier_Send(t *testing.T) {
	client := new(MockTelegramClient)
	client.On("SendMessage", "42", "hello").Return(nil).Once()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	n := NewNotifier(client, "42", logger)
	assert.True(t, n.Send("hello"))

	client.AssertExpectations(t)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
}

func TestNotifier_SendFailureIsSwallowed(t *testing.T) {
	client := new(MockTelegramClient)
	client.On("SendMessage", "42", "hello").Return(errors.New("telegram: Forbidden: bot was blocked by the user (403)")).Once()

	logger, hook := logtest.NewNullLogger()

	n := NewNotifier(client, "42", logger)
	assert.False(t, n.Send("hello"))

	client.AssertExpectations(t)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Data[logrus.ErrorKey].(error).Error(), "bot was blocked")
}
