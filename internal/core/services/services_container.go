package services

import (
	portsrepo "github.com/SscSPs/account_movements/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_movements/internal/core/ports/services"
	"github.com/SscSPs/account_movements/internal/platform/config"
	"github.com/SscSPs/account_movements/internal/utils"
)

// NewAccountIDGenerator returns the generator matching cfg.AccountIDFormat.
func NewAccountIDGenerator(cfg *config.Config) portssvc.AccountIDGenerator {
	if cfg.AccountIDFormat == config.AccountIDUUID {
		return utils.UUIDAccountIDGenerator{}
	}
	return utils.NumericAccountIDGenerator{}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...RegistryOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Registry: NewAccountRegistry(repos.MovementRepo, NewAccountIDGenerator(cfg), options...),
	}
}
