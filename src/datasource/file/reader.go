// reader.go
package file

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX opens a spreadsheet and converts one worksheet into a DataFrame
// of string series, first row as header. An empty sheetName selects the
// first sheet, matching how exports from the provider arrive.
func ReadXLSX(filePath, sheetName string) (dataframe.DataFrame, error) {
	xlFile, err := xlsx.OpenFile(filePath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open xlsx %s: %w", filePath, err)
	}
	if len(xlFile.Sheets) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("xlsx %s has no worksheets", filePath)
	}

	sheet := xlFile.Sheets[0]
	if sheetName != "" {
		named, ok := xlFile.Sheet[sheetName]
		if !ok {
			return dataframe.DataFrame{}, fmt.Errorf("xlsx %s has no sheet %q", filePath, sheetName)
		}
		sheet = named
	}

	return convertSheetToDataFrame(sheet), nil
}

// convertSheetToDataFrame turns an xlsx.Sheet into a DataFrame. Every
// column is loaded as a string series; typed coercion happens later in the
// processor. Rows shorter than the header are padded so the series stay
// equal length.
func convertSheetToDataFrame(sheet *xlsx.Sheet) dataframe.DataFrame {
	if len(sheet.Rows) == 0 {
		return dataframe.New()
	}

	var headers []string
	for _, cell := range sheet.Rows[0].Cells {
		headers = append(headers, cell.String())
	}
	if len(headers) == 0 {
		return dataframe.New()
	}

	columns := make([][]string, len(headers))
	for i := range columns {
		columns[i] = make([]string, 0, len(sheet.Rows)-1)
	}

	for _, row := range sheet.Rows[1:] {
		for i := range headers {
			if i < len(row.Cells) {
				columns[i] = append(columns[i], row.Cells[i].String())
			} else {
				columns[i] = append(columns[i], "")
			}
		}
	}

	seriesList := make([]series.Series, len(headers))
	for i, colName := range headers {
		seriesList[i] = series.New(columns[i], series.String, colName)
	}
	return dataframe.New(seriesList...)
}

// WriteXLSX saves a DataFrame as a single-sheet spreadsheet, header row
// first. Used by the sample-data generator and the tests.
func WriteXLSX(df dataframe.DataFrame, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Sheet1"

	colNames := df.Names()
	for i, name := range colNames {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("cell name for column %d: %w", i, err)
		}
		f.SetCellValue(sheetName, cell, name)
	}

	for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
		for colIdx, colName := range colNames {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("cell name for row %d: %w", rowIdx, err)
			}
			f.SetCellValue(sheetName, cell, df.Col(colName).Val(rowIdx))
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("save xlsx %s: %w", filePath, err)
	}
	return nil
}
