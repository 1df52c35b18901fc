package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "ollama-assistant/internal/errors"
)

func TestSession_Settings(t *testing.T) {
	session, _ := setupSession(t)

	assert.Equal(t, "llama3.2", session.CurrentModel())
	assert.True(t, session.IsStreaming())
	assert.NotEmpty(t, session.ID())

	require.NoError(t, session.SetModel("  qwen2.5-coder:7b "))
	assert.Equal(t, "qwen2.5-coder:7b", session.CurrentModel())

	err := session.SetModel(" ")
	assert.ErrorIs(t, err, app_errors.ErrValidation)
	assert.Equal(t, "qwen2.5-coder:7b", session.CurrentModel())

	session.SetStreaming(false)
	assert.False(t, session.IsStreaming())
	assert.Equal(t, systemPrompt, session.Settings().SystemPrompt)
}
