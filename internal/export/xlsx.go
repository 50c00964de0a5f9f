package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildWorkbook renders history rows into an xlsx workbook with a single
// TVL sheet, newest snapshot first.
func BuildWorkbook(rows []HistoryRow) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "TVL"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := []any{"Date", "Asset Value USD", "Token Supply", "Records", "Unclassified"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("computing cell for row %d: %w", i, err)
		}
		usd, _ := row.AssetValueUSD.Float64()
		values := []any{
			row.Date.Format("2006-01-02"),
			usd,
			row.TokenSupply,
			row.RecordCount,
			row.Unclassified,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	return f, nil
}
