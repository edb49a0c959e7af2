package app

import (
	"fmt"

	identityHTTP "github.com/fs9io/identity/internal/identity/http"
	identityRepository "github.com/fs9io/identity/internal/identity/repository"
	identityService "github.com/fs9io/identity/internal/identity/service"
	identityUseCase "github.com/fs9io/identity/internal/identity/usecase"
)

// TokenCodec returns the token codec used to sign and verify tokens.
// Fails when the signing secret is not configured.
func (c *Container) TokenCodec() (identityService.TokenCodec, error) {
	var err error
	c.tokenCodecInit.Do(func() {
		c.tokenCodec, err = identityService.NewTokenCodec(c.config.TokenSigningSecret)
		if err != nil {
			c.initErrors["tokenCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// NamespaceRepository returns the namespace repository based on database driver.
func (c *Container) NamespaceRepository() (identityUseCase.NamespaceRepository, error) {
	var err error
	c.namespaceRepositoryInit.Do(func() {
		c.namespaceRepository, err = c.initNamespaceRepository()
		if err != nil {
			c.initErrors["namespaceRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["namespaceRepository"]; exists {
		return nil, storedErr
	}
	return c.namespaceRepository, nil
}

// UserRepository returns the user repository based on database driver.
func (c *Container) UserRepository() (identityUseCase.UserRepository, error) {
	var err error
	c.userRepositoryInit.Do(func() {
		c.userRepository, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepository"]; exists {
		return nil, storedErr
	}
	return c.userRepository, nil
}

// RevocationRepository returns the revocation repository based on database driver.
func (c *Container) RevocationRepository() (identityUseCase.RevocationRepository, error) {
	var err error
	c.revocationRepositoryInit.Do(func() {
		c.revocationRepository, err = c.initRevocationRepository()
		if err != nil {
			c.initErrors["revocationRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["revocationRepository"]; exists {
		return nil, storedErr
	}
	return c.revocationRepository, nil
}

// TokenUseCase returns the token lifecycle use case.
func (c *Container) TokenUseCase() (identityUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// NamespaceUseCase returns the namespace administration use case.
func (c *Container) NamespaceUseCase() (identityUseCase.NamespaceUseCase, error) {
	var err error
	c.namespaceUseCaseInit.Do(func() {
		c.namespaceUseCase, err = c.initNamespaceUseCase()
		if err != nil {
			c.initErrors["namespaceUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["namespaceUseCase"]; exists {
		return nil, storedErr
	}
	return c.namespaceUseCase, nil
}

// UserUseCase returns the user administration use case.
func (c *Container) UserUseCase() (identityUseCase.UserUseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// TokenHandler returns the HTTP handler for token lifecycle endpoints.
func (c *Container) TokenHandler() (*identityHTTP.TokenHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}
	return identityHTTP.NewTokenHandler(tokenUseCase, c.Logger()), nil
}

// NamespaceHandler returns the HTTP handler for namespace administration endpoints.
func (c *Container) NamespaceHandler() (*identityHTTP.NamespaceHandler, error) {
	namespaceUseCase, err := c.NamespaceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get namespace use case for namespace handler: %w", err)
	}
	return identityHTTP.NewNamespaceHandler(namespaceUseCase, c.Logger()), nil
}

// UserHandler returns the HTTP handler for user administration endpoints.
func (c *Container) UserHandler() (*identityHTTP.UserHandler, error) {
	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for user handler: %w", err)
	}
	return identityHTTP.NewUserHandler(userUseCase, c.Logger()), nil
}

// initNamespaceRepository creates the namespace repository instance.
func (c *Container) initNamespaceRepository() (identityUseCase.NamespaceRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for namespace repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLNamespaceRepository(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLNamespaceRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserRepository creates the user repository instance.
func (c *Container) initUserRepository() (identityUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRevocationRepository creates the revocation repository instance.
func (c *Container) initRevocationRepository() (identityUseCase.RevocationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for revocation repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLRevocationRepository(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLRevocationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenUseCase creates the token use case with all its dependencies.
// The use case is wrapped with business metrics when metrics are enabled.
func (c *Container) initTokenUseCase() (identityUseCase.TokenUseCase, error) {
	codec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for token use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for token use case: %w", err)
	}

	namespaceRepo, err := c.NamespaceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get namespace repository for token use case: %w", err)
	}

	revocationRepo, err := c.RevocationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get revocation repository for token use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
	}

	useCase := identityUseCase.NewTokenUseCase(codec, userRepo, namespaceRepo, revocationRepo, c.config)

	return identityUseCase.NewTokenUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initNamespaceUseCase creates the namespace use case with all its dependencies.
func (c *Container) initNamespaceUseCase() (identityUseCase.NamespaceUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for namespace use case: %w", err)
	}

	namespaceRepo, err := c.NamespaceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get namespace repository for namespace use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for namespace use case: %w", err)
	}

	return identityUseCase.NewNamespaceUseCase(txManager, namespaceRepo, userRepo), nil
}

// initUserUseCase creates the user use case with all its dependencies.
func (c *Container) initUserUseCase() (identityUseCase.UserUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	namespaceRepo, err := c.NamespaceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get namespace repository for user use case: %w", err)
	}

	return identityUseCase.NewUserUseCase(userRepo, namespaceRepo), nil
}
