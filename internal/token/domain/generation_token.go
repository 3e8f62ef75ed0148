// Package domain defines the generation token entity.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxIssueCount caps how many tokens a single issue request creates.
const MaxIssueCount = 50

// GenerationToken is a single-use secret authorizing the creation of one document.
// Once IsUsed is true, UsedAt is set and neither field changes again. Tokens are
// never deleted.
type GenerationToken struct {
	ID        uuid.UUID  `json:"id"`
	Token     string     `json:"token"`
	IsUsed    bool       `json:"is_used"`
	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
}

// MarkUsed transitions the token to USED at the given instant. It reports false
// when the token was already used.
func (t *GenerationToken) MarkUsed(at time.Time) bool {
	if t.IsUsed {
		return false
	}
	t.IsUsed = true
	t.UsedAt = &at
	return true
}

// ClampIssueCount limits a requested batch size to MaxIssueCount.
func ClampIssueCount(count int) int {
	return min(count, MaxIssueCount)
}
