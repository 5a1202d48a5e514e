package dimensions

import (
	"bytes"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/dto/responses"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var dimensionExportHeaders = []string{"Date", "Issued", "Weight (kg)", "Height (cm)", "BMI", "Encounter"}

var dimensionExportColumnWidths = []float64{14, 28, 14, 14, 10, 38}

// buildDimensionsWorkbook renders one row per dimension record under a frozen header.
// Missing measurements leave their cell empty.
func buildDimensionsWorkbook(dimensions []responses.Dimension) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := constvars.ExportSheetName
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range dimensionExportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, dimensionExportColumnWidths[i]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, dimension := range dimensions {
		row := i + 2
		values := []interface{}{
			dimension.DateLong,
			dimension.Issued,
			floatOrEmpty(dimension.Weight),
			floatOrEmpty(dimension.Height),
			floatOrEmpty(dimension.BMI),
			dimension.ID,
		}
		for col, value := range values {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	err = f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func floatOrEmpty(value *float64) interface{} {
	if value == nil {
		return ""
	}
	return *value
}
