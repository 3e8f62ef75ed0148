// Package domain defines documents and their access links.
package domain

import (
	"encoding/json"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Document is an immutable, opaque record. Payload is kept byte-for-byte as
// submitted; Name, Surname and Pesel are copies of the matching top-level string
// members, kept for listing.
type Document struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   *uuid.UUID      `json:"owner_id,omitempty"`
	Name      string          `json:"name"`
	Surname   string          `json:"surname"`
	Pesel     string          `json:"pesel"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListingFieldMaxRunes caps the listing copies so they fit the narrowest column
// any backend uses. The payload itself is never shortened.
const ListingFieldMaxRunes = 255

// NewDocument builds a document around payload, extracting the listing fields.
func NewDocument(id uuid.UUID, ownerID *uuid.UUID, payload json.RawMessage, createdAt time.Time) *Document {
	doc := &Document{
		ID:        id,
		OwnerID:   ownerID,
		Payload:   payload,
		CreatedAt: createdAt,
	}
	doc.Name, doc.Surname, doc.Pesel = extractListingFields(payload)
	return doc
}

func extractListingFields(payload json.RawMessage) (name, surname, pesel string) {
	var fields struct {
		Name    any `json:"name"`
		Surname any `json:"surname"`
		Pesel   any `json:"pesel"`
	}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return "", "", ""
	}
	return asString(fields.Name), asString(fields.Surname), asString(fields.Pesel)
}

func asString(v any) string {
	s, _ := v.(string)
	if utf8.RuneCountInString(s) <= ListingFieldMaxRunes {
		return s
	}
	return string([]rune(s)[:ListingFieldMaxRunes])
}

// Upper bounds on access link limits. MaxLinkViews is the largest value an INTEGER
// view counter column holds.
const (
	MaxLinkViews           = 2147483647
	MaxLinkLifetimeSeconds = 10 * 365 * 24 * 60 * 60
)

// AccessLink grants retrieval of a document until it expires or its views run out.
// A nil ExpiresAt or MaxViews means no limit of that kind.
type AccessLink struct {
	ID          uuid.UUID  `json:"id"`
	DocumentID  uuid.UUID  `json:"document_id"`
	AccessToken string     `json:"access_token"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	MaxViews    *int       `json:"max_views,omitempty"`
	ViewCount   int        `json:"view_count"`
}

// IsExpired reports whether now is strictly after the link's expiry.
func (l *AccessLink) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// IsExhausted reports whether every allowed view has been used.
func (l *AccessLink) IsExhausted() bool {
	return l.MaxViews != nil && l.ViewCount >= *l.MaxViews
}

// ConsumeInput pairs a generation token with the document it pays for.
type ConsumeInput struct {
	Token   string
	Payload json.RawMessage
}

// ConsumeOutput identifies the stored document and the link that retrieves it.
type ConsumeOutput struct {
	DocumentID  uuid.UUID
	AccessToken string
}

// PutDocumentInput holds a document to store. OwnerID is nil for anonymous documents.
type PutDocumentInput struct {
	OwnerID *uuid.UUID
	Payload json.RawMessage
}

// CreateDocumentOutput is a stored document together with its first access link.
type CreateDocumentOutput struct {
	Document   *Document
	AccessLink *AccessLink
}

// CreateAccessLinkInput holds the limits of a new link for an existing document.
type CreateAccessLinkInput struct {
	DocumentID uuid.UUID
	ExpiresAt  *time.Time
	MaxViews   *int
}
