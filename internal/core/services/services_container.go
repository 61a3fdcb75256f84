package services

import (
	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	portsrepo "github.com/SscSPs/miguelacho_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/miguelacho_api/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repo portsrepo.TableRepositoryFacade, fields domain.RateTableFields) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Conversion: NewConversionService(repo, fields),
		Tables:     NewTableService(repo),
	}
}
