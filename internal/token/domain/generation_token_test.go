package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/docgate/internal/errors"
)

func TestGenerationToken_MarkUsed(t *testing.T) {
	token := &GenerationToken{Token: "abc123"}
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.True(t, token.MarkUsed(first))
	assert.True(t, token.IsUsed)
	require.NotNil(t, token.UsedAt)
	assert.Equal(t, first, *token.UsedAt)

	assert.False(t, token.MarkUsed(first.Add(time.Hour)))
	assert.Equal(t, first, *token.UsedAt)
}

func TestClampIssueCount(t *testing.T) {
	assert.Equal(t, 1, ClampIssueCount(1))
	assert.Equal(t, 50, ClampIssueCount(50))
	assert.Equal(t, 50, ClampIssueCount(51))
	assert.Equal(t, 50, ClampIssueCount(10_000))
}

func TestErrors(t *testing.T) {
	assert.True(t, apperrors.Is(ErrGenerationTokenNotFound, apperrors.ErrNotFound))
	assert.True(t, apperrors.Is(ErrGenerationTokenAlreadyUsed, apperrors.ErrConflict))
	assert.Equal(t, "token_already_used", apperrors.Code(ErrGenerationTokenAlreadyUsed))
}
