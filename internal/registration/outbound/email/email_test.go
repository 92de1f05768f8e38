package email

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockMail struct {
	mock.Mock
}

func (m *mockMail) Send(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMail) Close() error { return nil }

func TestMail_Send(t *testing.T) {
	t.Parallel()

	msg := mail.Message{To: []string{"ann@x.com"}, Subject: "hi"}

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		client := new(mockMail)
		client.On("Send", mock.Anything, msg).Return(nil).Once()

		err := New(client, instrument.NewNoop()).Send(context.Background(), msg)

		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("ErrorPassedThrough", func(t *testing.T) {
		t.Parallel()

		cause := &mail.DeliveryError{Kind: mail.ErrAuthentication, Err: errors.New("535 bad credentials")}
		client := new(mockMail)
		client.On("Send", mock.Anything, msg).Return(cause).Once()

		err := New(client, instrument.NewNoop()).Send(context.Background(), msg)

		assert.ErrorIs(t, err, mail.ErrAuthentication)
		client.AssertExpectations(t)
	})
}
