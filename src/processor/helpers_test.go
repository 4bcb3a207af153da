package processor

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// newStringFrame builds a DataFrame of string series from records, first
// row as header, the shape tables have right after the spreadsheet read.
func newStringFrame(records [][]string) dataframe.DataFrame {
	return dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
}
