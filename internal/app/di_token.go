package app

import (
	"fmt"

	tokenHTTP "github.com/allisson/docgate/internal/token/http"
	tokenRepository "github.com/allisson/docgate/internal/token/repository"
	tokenService "github.com/allisson/docgate/internal/token/service"
	tokenUseCase "github.com/allisson/docgate/internal/token/usecase"
)

// GenerationTokenRepository returns the generation token repository based on database driver.
func (c *Container) GenerationTokenRepository() (tokenUseCase.GenerationTokenRepository, error) {
	var err error
	c.generationTokenRepositoryInit.Do(func() {
		c.generationTokenRepository, err = c.initGenerationTokenRepository()
		if err != nil {
			c.initErrors["generationTokenRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["generationTokenRepository"]; exists {
		return nil, storedErr
	}
	return c.generationTokenRepository, nil
}

// GenerationTokenUseCase returns the generation token use case.
func (c *Container) GenerationTokenUseCase() (tokenUseCase.GenerationTokenUseCase, error) {
	var err error
	c.generationTokenUseCaseInit.Do(func() {
		c.generationTokenUseCase, err = c.initGenerationTokenUseCase()
		if err != nil {
			c.initErrors["generationTokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["generationTokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.generationTokenUseCase, nil
}

// GenerationTokenHandler returns the HTTP handler for generation tokens.
func (c *Container) GenerationTokenHandler() (*tokenHTTP.GenerationTokenHandler, error) {
	var err error
	c.generationTokenHandlerInit.Do(func() {
		var useCase tokenUseCase.GenerationTokenUseCase
		useCase, err = c.GenerationTokenUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get generation token use case for handler: %w", err)
			c.initErrors["generationTokenHandler"] = err
			return
		}
		c.generationTokenHandler = tokenHTTP.NewGenerationTokenHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["generationTokenHandler"]; exists {
		return nil, storedErr
	}
	return c.generationTokenHandler, nil
}

func (c *Container) initGenerationTokenRepository() (tokenUseCase.GenerationTokenRepository, error) {
	db, kv, err := c.storage()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for generation token repository: %w", err)
	}

	switch {
	case kv != nil:
		return tokenRepository.NewBadgerGenerationTokenRepository(kv), nil
	case c.config.DBDriver == "mysql":
		return tokenRepository.NewMySQLGenerationTokenRepository(db), nil
	default:
		return tokenRepository.NewPostgreSQLGenerationTokenRepository(db), nil
	}
}

func (c *Container) initGenerationTokenUseCase() (tokenUseCase.GenerationTokenUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for generation token use case: %w", err)
	}

	repo, err := c.GenerationTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get repository for generation token use case: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for generation token use case: %w", err)
	}

	useCase := tokenUseCase.NewGenerationTokenUseCase(
		txManager,
		repo,
		tokenService.NewHexGenerator(tokenService.GenerationTokenBytes),
	)
	return tokenUseCase.NewGenerationTokenUseCaseWithMetrics(useCase, bm), nil
}
