package app

import (
	"fmt"

	documentHTTP "github.com/allisson/docgate/internal/document/http"
	documentRepository "github.com/allisson/docgate/internal/document/repository"
	documentUseCase "github.com/allisson/docgate/internal/document/usecase"
	tokenService "github.com/allisson/docgate/internal/token/service"
)

// DocumentRepository returns the document repository based on database driver.
func (c *Container) DocumentRepository() (documentUseCase.DocumentRepository, error) {
	var err error
	c.documentRepositoryInit.Do(func() {
		c.documentRepository, err = c.initDocumentRepository()
		if err != nil {
			c.initErrors["documentRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentRepository"]; exists {
		return nil, storedErr
	}
	return c.documentRepository, nil
}

// AccessLinkRepository returns the access link repository based on database driver.
func (c *Container) AccessLinkRepository() (documentUseCase.AccessLinkRepository, error) {
	var err error
	c.accessLinkRepositoryInit.Do(func() {
		c.accessLinkRepository, err = c.initAccessLinkRepository()
		if err != nil {
			c.initErrors["accessLinkRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accessLinkRepository"]; exists {
		return nil, storedErr
	}
	return c.accessLinkRepository, nil
}

// ConsumptionUseCase returns the token consumption use case.
func (c *Container) ConsumptionUseCase() (documentUseCase.ConsumptionUseCase, error) {
	var err error
	c.consumptionUseCaseInit.Do(func() {
		c.consumptionUseCase, err = c.initConsumptionUseCase()
		if err != nil {
			c.initErrors["consumptionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["consumptionUseCase"]; exists {
		return nil, storedErr
	}
	return c.consumptionUseCase, nil
}

// AccessLinkUseCase returns the access link use case.
func (c *Container) AccessLinkUseCase() (documentUseCase.AccessLinkUseCase, error) {
	var err error
	c.accessLinkUseCaseInit.Do(func() {
		c.accessLinkUseCase, err = c.initAccessLinkUseCase()
		if err != nil {
			c.initErrors["accessLinkUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accessLinkUseCase"]; exists {
		return nil, storedErr
	}
	return c.accessLinkUseCase, nil
}

// DocumentUseCase returns the document use case.
func (c *Container) DocumentUseCase() (documentUseCase.DocumentUseCase, error) {
	var err error
	c.documentUseCaseInit.Do(func() {
		c.documentUseCase, err = c.initDocumentUseCase()
		if err != nil {
			c.initErrors["documentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentUseCase"]; exists {
		return nil, storedErr
	}
	return c.documentUseCase, nil
}

// DocumentHandler returns the HTTP handler for documents and access links.
func (c *Container) DocumentHandler() (*documentHTTP.DocumentHandler, error) {
	var err error
	c.documentHandlerInit.Do(func() {
		c.documentHandler, err = c.initDocumentHandler()
		if err != nil {
			c.initErrors["documentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentHandler"]; exists {
		return nil, storedErr
	}
	return c.documentHandler, nil
}

func (c *Container) initDocumentRepository() (documentUseCase.DocumentRepository, error) {
	db, kv, err := c.storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for document repository: %w", err)
	}

	switch {
	case kv != nil:
		return documentRepository.NewBadgerDocumentRepository(kv), nil
	case c.config.DBDriver == "mysql":
		return documentRepository.NewMySQLDocumentRepository(db), nil
	default:
		return documentRepository.NewPostgreSQLDocumentRepository(db), nil
	}
}

func (c *Container) initAccessLinkRepository() (documentUseCase.AccessLinkRepository, error) {
	db, kv, err := c.storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for access link repository: %w", err)
	}

	switch {
	case kv != nil:
		return documentRepository.NewBadgerAccessLinkRepository(kv), nil
	case c.config.DBDriver == "mysql":
		return documentRepository.NewMySQLAccessLinkRepository(db), nil
	default:
		return documentRepository.NewPostgreSQLAccessLinkRepository(db), nil
	}
}

func (c *Container) initConsumptionUseCase() (documentUseCase.ConsumptionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for consumption use case: %w", err)
	}
	tokenRepo, err := c.GenerationTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get generation token repository for consumption use case: %w", err)
	}
	documentRepo, err := c.DocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get document repository for consumption use case: %w", err)
	}
	accessLinkRepo, err := c.AccessLinkRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get access link repository for consumption use case: %w", err)
	}
	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for consumption use case: %w", err)
	}

	useCase := documentUseCase.NewConsumptionUseCase(
		txManager,
		tokenRepo,
		documentRepo,
		accessLinkRepo,
		tokenService.NewURLSafeGenerator(tokenService.AccessTokenBytes),
	)
	return documentUseCase.NewConsumptionUseCaseWithMetrics(useCase, bm), nil
}

func (c *Container) initAccessLinkUseCase() (documentUseCase.AccessLinkUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for access link use case: %w", err)
	}
	documentRepo, err := c.DocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get document repository for access link use case: %w", err)
	}
	accessLinkRepo, err := c.AccessLinkRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get access link repository for access link use case: %w", err)
	}
	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for access link use case: %w", err)
	}

	useCase := documentUseCase.NewAccessLinkUseCase(
		txManager,
		documentRepo,
		accessLinkRepo,
		tokenService.NewURLSafeGenerator(tokenService.AccessTokenBytes),
	)
	return documentUseCase.NewAccessLinkUseCaseWithMetrics(useCase, bm), nil
}

func (c *Container) initDocumentUseCase() (documentUseCase.DocumentUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for document use case: %w", err)
	}
	documentRepo, err := c.DocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get document repository for document use case: %w", err)
	}
	accessLinkRepo, err := c.AccessLinkRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get access link repository for document use case: %w", err)
	}
	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for document use case: %w", err)
	}

	useCase := documentUseCase.NewDocumentUseCase(
		txManager,
		documentRepo,
		accessLinkRepo,
		tokenService.NewURLSafeGenerator(tokenService.AccessTokenBytes),
	)
	return documentUseCase.NewDocumentUseCaseWithMetrics(useCase, bm), nil
}

func (c *Container) initDocumentHandler() (*documentHTTP.DocumentHandler, error) {
	consumption, err := c.ConsumptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get consumption use case for document handler: %w", err)
	}
	accessLinks, err := c.AccessLinkUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get access link use case for document handler: %w", err)
	}
	documents, err := c.DocumentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get document use case for document handler: %w", err)
	}
	return documentHTTP.NewDocumentHandler(consumption, accessLinks, documents, c.Logger()), nil
}
