package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/paothinnapat/sales-tracker/internal/domain"
)

// RowSource yields the ledger's data rows in sheet order
type RowSource interface {
	Rows(ctx context.Context) ([][]string, error)
}

// WriteXLSX copies the ledger into a local .xlsx workbook at path and
// returns the number of data rows written. The header row is always written
// so an empty ledger still produces a usable workbook.
func WriteXLSX(ctx context.Context, src RowSource, path string) (int, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read ledger rows: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(domain.SheetHeader))
	for i, h := range domain.SheetHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return 0, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return 0, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("failed to save workbook: %w", err)
	}
	return len(rows), nil
}
