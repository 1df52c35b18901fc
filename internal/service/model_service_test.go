package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "ollama-assistant/internal/errors"
	"ollama-assistant/internal/llm"
)

func TestSession_ListModels(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		session, transport := setupSession(t)
		transport.On("ListModels", ctx).Return([]string{"a", "b"}, nil).Once()

		models, err := session.ListModels(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, models)
	})

	t.Run("Failure - error is passed through", func(t *testing.T) {
		session, transport := setupSession(t)
		transport.On("ListModels", ctx).Return(nil, &llm.ServerError{StatusCode: http.StatusInternalServerError}).Once()

		models, err := session.ListModels(ctx)
		assert.ErrorIs(t, err, app_errors.ErrServer)
		assert.Nil(t, models)
	})
}

func TestSession_CheckConnection(t *testing.T) {
	ctx := context.Background()
	session, transport := setupSession(t)
	transport.On("BaseURL").Return("http://localhost:11434")
	transport.On("CheckConnection", ctx).Return(true).Once()
	transport.On("CheckConnection", ctx).Return(false).Once()

	assert.True(t, session.CheckConnection(ctx))
	assert.False(t, session.CheckConnection(ctx))
	assert.Equal(t, "http://localhost:11434", session.BaseURL())
}
