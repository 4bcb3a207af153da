// normalize.go
package processor

import (
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// Normalize coerces an arbitrarily-shaped raw table into the canonical
// column set: names trimmed, lower-cased, spaces replaced by underscores.
// A table whose single column name embeds commas is treated as a mis-parsed
// CSV payload and rebuilt first. The input frame is never modified; a table
// that is already canonical comes back unchanged. Malformed input is not an
// error here, it surfaces later as a schema failure in Prepare.
func Normalize(raw dataframe.DataFrame) dataframe.DataFrame {
	df := fixSingleColumnCSV(raw)

	names := df.Names()
	canon := make([]string, len(names))
	for i, n := range names {
		canon[i] = CanonicalColumn(n)
	}

	out := df.Copy()
	if err := out.SetNames(canon...); err != nil {
		return df
	}
	return out
}

// CanonicalColumn normalizes a single column name.
func CanonicalColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// fixSingleColumnCSV detects the degenerate export where the whole table
// landed in one column whose header is the comma-joined column list. The
// header plus the string form of every cell are reassembled into a CSV
// document and re-parsed into a proper table.
func fixSingleColumnCSV(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Ncol() != 1 {
		return df
	}
	header := df.Names()[0]
	if !strings.Contains(header, ",") {
		return df
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, rec := range df.Col(header).Records() {
		b.WriteString(rec)
		b.WriteByte('\n')
	}

	parsed := dataframe.ReadCSV(strings.NewReader(b.String()))
	if parsed.Err != nil {
		return df
	}
	return parsed
}
