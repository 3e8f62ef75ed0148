package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	documentDomain "github.com/allisson/docgate/internal/document/domain"
	"github.com/allisson/docgate/internal/metrics"
)

type consumptionUseCaseWithMetrics struct {
	next    ConsumptionUseCase
	metrics metrics.BusinessMetrics
}

// NewConsumptionUseCaseWithMetrics wraps a ConsumptionUseCase with metrics recording.
func NewConsumptionUseCaseWithMetrics(useCase ConsumptionUseCase, m metrics.BusinessMetrics) ConsumptionUseCase {
	return &consumptionUseCaseWithMetrics{next: useCase, metrics: m}
}

func (c *consumptionUseCaseWithMetrics) Consume(
	ctx context.Context,
	input *documentDomain.ConsumeInput,
) (*documentDomain.ConsumeOutput, error) {
	start := time.Now()
	output, err := c.next.Consume(ctx, input)
	metrics.Observe(ctx, c.metrics, metrics.DomainGenerationTokens, "consume", start, err)
	return output, err
}

type accessLinkUseCaseWithMetrics struct {
	next    AccessLinkUseCase
	metrics metrics.BusinessMetrics
}

// NewAccessLinkUseCaseWithMetrics wraps an AccessLinkUseCase with metrics recording.
// Refused resolutions are labeled link_expired or quota_exceeded.
func NewAccessLinkUseCaseWithMetrics(useCase AccessLinkUseCase, m metrics.BusinessMetrics) AccessLinkUseCase {
	return &accessLinkUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *accessLinkUseCaseWithMetrics) Resolve(
	ctx context.Context,
	accessToken string,
	now time.Time,
) (*documentDomain.Document, error) {
	start := time.Now()
	doc, err := a.next.Resolve(ctx, accessToken, now)
	metrics.Observe(ctx, a.metrics, metrics.DomainAccessLinks, "resolve", start, err)
	return doc, err
}

func (a *accessLinkUseCaseWithMetrics) Create(
	ctx context.Context,
	input *documentDomain.CreateAccessLinkInput,
) (*documentDomain.AccessLink, error) {
	start := time.Now()
	link, err := a.next.Create(ctx, input)
	metrics.Observe(ctx, a.metrics, metrics.DomainAccessLinks, "create", start, err)
	return link, err
}

func (a *accessLinkUseCaseWithMetrics) ListByDocument(
	ctx context.Context,
	documentID uuid.UUID,
) ([]*documentDomain.AccessLink, error) {
	start := time.Now()
	links, err := a.next.ListByDocument(ctx, documentID)
	metrics.Observe(ctx, a.metrics, metrics.DomainAccessLinks, "list", start, err)
	return links, err
}

type documentUseCaseWithMetrics struct {
	next    DocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewDocumentUseCaseWithMetrics wraps a DocumentUseCase with metrics recording.
func NewDocumentUseCaseWithMetrics(useCase DocumentUseCase, m metrics.BusinessMetrics) DocumentUseCase {
	return &documentUseCaseWithMetrics{next: useCase, metrics: m}
}

func (d *documentUseCaseWithMetrics) Put(
	ctx context.Context,
	input *documentDomain.PutDocumentInput,
) (*documentDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.Put(ctx, input)
	metrics.Observe(ctx, d.metrics, metrics.DomainDocuments, "put", start, err)
	return doc, err
}

func (d *documentUseCaseWithMetrics) Create(
	ctx context.Context,
	input *documentDomain.PutDocumentInput,
) (*documentDomain.CreateDocumentOutput, error) {
	start := time.Now()
	output, err := d.next.Create(ctx, input)
	metrics.Observe(ctx, d.metrics, metrics.DomainDocuments, "create", start, err)
	return output, err
}

func (d *documentUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*documentDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.Get(ctx, id)
	metrics.Observe(ctx, d.metrics, metrics.DomainDocuments, "get", start, err)
	return doc, err
}

func (d *documentUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*documentDomain.Document, error) {
	start := time.Now()
	docs, err := d.next.List(ctx, offset, limit)
	metrics.Observe(ctx, d.metrics, metrics.DomainDocuments, "list", start, err)
	return docs, err
}

func (d *documentUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := d.next.Delete(ctx, id)
	metrics.Observe(ctx, d.metrics, metrics.DomainDocuments, "delete", start, err)
	return err
}
