package dto

import (
	"time"

	tokenDomain "github.com/allisson/docgate/internal/token/domain"
)

// GenerationTokenResponse represents a generation token in API responses.
type GenerationTokenResponse struct {
	ID        string     `json:"id"`
	Token     string     `json:"token"`
	IsUsed    bool       `json:"is_used"`
	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedBy *string    `json:"created_by,omitempty"`
}

// MapGenerationTokenToResponse converts a domain token to an API response.
func MapGenerationTokenToResponse(token *tokenDomain.GenerationToken) GenerationTokenResponse {
	response := GenerationTokenResponse{
		ID:        token.ID.String(),
		Token:     token.Token,
		IsUsed:    token.IsUsed,
		CreatedAt: token.CreatedAt,
		UsedAt:    token.UsedAt,
	}
	if token.CreatedBy != nil {
		createdBy := token.CreatedBy.String()
		response.CreatedBy = &createdBy
	}
	return response
}

// ListGenerationTokensResponse wraps a batch or page of tokens.
type ListGenerationTokensResponse struct {
	Data []GenerationTokenResponse `json:"data"`
}

// MapGenerationTokensToListResponse converts domain tokens to a list API response.
func MapGenerationTokensToListResponse(tokens []*tokenDomain.GenerationToken) ListGenerationTokensResponse {
	data := make([]GenerationTokenResponse, 0, len(tokens))
	for _, token := range tokens {
		data = append(data, MapGenerationTokenToResponse(token))
	}
	return ListGenerationTokensResponse{Data: data}
}

// ValidateTokenResponse reports whether a token can still be consumed.
type ValidateTokenResponse struct {
	Valid  bool `json:"valid"`
	IsUsed bool `json:"is_used"`
}
