package dto

import (
	"encoding/json"
	"time"

	documentDomain "github.com/allisson/docgate/internal/document/domain"
)

// ConsumeResponse identifies the stored document and its access token.
type ConsumeResponse struct {
	DocumentID  string `json:"document_id"`
	AccessToken string `json:"access_token"`
}

// MapConsumeOutputToResponse converts a consume result to its API response.
func MapConsumeOutputToResponse(output *documentDomain.ConsumeOutput) ConsumeResponse {
	return ConsumeResponse{
		DocumentID:  output.DocumentID.String(),
		AccessToken: output.AccessToken,
	}
}

// CreateDocumentResponse is returned to owners after storing a document.
type CreateDocumentResponse struct {
	DocumentID  string    `json:"document_id"`
	AccessToken string    `json:"access_token"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapCreateDocumentOutputToResponse converts an owner create result to its API response.
func MapCreateDocumentOutputToResponse(output *documentDomain.CreateDocumentOutput) CreateDocumentResponse {
	return CreateDocumentResponse{
		DocumentID:  output.Document.ID.String(),
		AccessToken: output.AccessLink.AccessToken,
		CreatedAt:   output.Document.CreatedAt,
	}
}

// DocumentResponse describes a document. Payload is omitted in listings.
type DocumentResponse struct {
	ID        string          `json:"id"`
	OwnerID   *string         `json:"owner_id,omitempty"`
	Name      string          `json:"name"`
	Surname   string          `json:"surname"`
	Pesel     string          `json:"pesel"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListDocumentsResponse wraps a page of document summaries.
type ListDocumentsResponse struct {
	Data []DocumentResponse `json:"data"`
}

// MapDocumentToResponse converts a domain document to its API response.
func MapDocumentToResponse(doc *documentDomain.Document) DocumentResponse {
	response := DocumentResponse{
		ID:        doc.ID.String(),
		Name:      doc.Name,
		Surname:   doc.Surname,
		Pesel:     doc.Pesel,
		Payload:   doc.Payload,
		CreatedAt: doc.CreatedAt,
	}
	if doc.OwnerID != nil {
		ownerID := doc.OwnerID.String()
		response.OwnerID = &ownerID
	}
	return response
}

// MapDocumentsToListResponse converts documents to a list response.
func MapDocumentsToListResponse(docs []*documentDomain.Document) ListDocumentsResponse {
	data := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		data = append(data, MapDocumentToResponse(doc))
	}
	return ListDocumentsResponse{Data: data}
}

// AccessLinkResponse describes an access link and its remaining limits.
type AccessLinkResponse struct {
	ID          string     `json:"id"`
	DocumentID  string     `json:"document_id"`
	AccessToken string     `json:"access_token"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	MaxViews    *int       `json:"max_views"`
	ViewCount   int        `json:"view_count"`
}

// ListAccessLinksResponse wraps the links of one document.
type ListAccessLinksResponse struct {
	Data []AccessLinkResponse `json:"data"`
}

// MapAccessLinkToResponse converts a domain access link to its API response.
func MapAccessLinkToResponse(link *documentDomain.AccessLink) AccessLinkResponse {
	return AccessLinkResponse{
		ID:          link.ID.String(),
		DocumentID:  link.DocumentID.String(),
		AccessToken: link.AccessToken,
		CreatedAt:   link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
		MaxViews:    link.MaxViews,
		ViewCount:   link.ViewCount,
	}
}

// MapAccessLinksToListResponse converts access links to a list response.
func MapAccessLinksToListResponse(links []*documentDomain.AccessLink) ListAccessLinksResponse {
	data := make([]AccessLinkResponse, 0, len(links))
	for _, link := range links {
		data = append(data, MapAccessLinkToResponse(link))
	}
	return ListAccessLinksResponse{Data: data}
}
