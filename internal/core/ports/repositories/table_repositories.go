package repositories

import (
	"context"

	"github.com/SscSPs/miguelacho_api/internal/core/domain"
)

// SheetGateway reads raw ranges from the spreadsheet backing the service.
type SheetGateway interface {
	// FetchRange returns the cells of sheetName!cellRange. Any failure is total:
	// callers never receive a partial grid.
	FetchRange(ctx context.Context, sheetName, cellRange string) (domain.RawGrid, error)
}

// TableLoader builds a complete snapshot of the rate and profit tables.
type TableLoader interface {
	Load(ctx context.Context) (*domain.Tables, error)
}

// TableReader defines read access to the current tables.
type TableReader interface {
	// Get returns the tables to use for the current request.
	Get(ctx context.Context) (*domain.Tables, error)
}

// TableRefresher defines explicit reloads of the tables.
type TableRefresher interface {
	// Refresh reloads both tables from the gateway and returns the tables it loaded.
	Refresh(ctx context.Context) (*domain.Tables, error)
}

// TableRepositoryFacade combines read and refresh access to the tables.
type TableRepositoryFacade interface {
	TableReader
	TableRefresher
}
