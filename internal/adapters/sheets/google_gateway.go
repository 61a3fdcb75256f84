package sheets

import (
	"context"
	"fmt"
	"os"

	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	portsrepo "github.com/SscSPs/miguelacho_api/internal/core/ports/repositories"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleSheetsGateway reads ranges from one Google spreadsheet.
type GoogleSheetsGateway struct {
	service       *gsheets.Service
	spreadsheetID string
}

// NewGoogleSheetsGateway authenticates with the service-account credentials file
// at credentialsPath, restricted to the read-only spreadsheets scope.
func NewGoogleSheetsGateway(ctx context.Context, credentialsPath, spreadsheetID string) (*GoogleSheetsGateway, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read google credentials '%s': %w", credentialsPath, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, gsheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}

	return NewGoogleSheetsGatewayWithOptions(ctx, spreadsheetID, option.WithCredentials(creds))
}

// NewGoogleSheetsGatewayWithOptions builds the Sheets client from explicit client options.
func NewGoogleSheetsGatewayWithOptions(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*GoogleSheetsGateway, error) {
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleSheetsGateway{service: svc, spreadsheetID: spreadsheetID}, nil
}

// FetchRange returns the formatted values of sheetName!cellRange.
func (g *GoogleSheetsGateway) FetchRange(ctx context.Context, sheetName, cellRange string) (domain.RawGrid, error) {
	rng := domain.SheetRange{Sheet: sheetName, Range: cellRange}.String()

	resp, err := g.service.Spreadsheets.Values.Get(g.spreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rng, err)
	}

	return toRawGrid(resp.Values), nil
}

func toRawGrid(values [][]interface{}) domain.RawGrid {
	grid := make(domain.RawGrid, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch cell := v.(type) {
			case nil:
				cells[j] = ""
			case string:
				cells[j] = cell
			default:
				cells[j] = fmt.Sprint(cell)
			}
		}
		grid[i] = cells
	}
	return grid
}

var _ portsrepo.SheetGateway = (*GoogleSheetsGateway)(nil)
