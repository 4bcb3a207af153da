// cache.go
package file

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-gota/gota/dataframe"

	"AirQualityEurope/src/processor"
)

// FileMissingError reports that the configured source file does not exist.
// It halts the pipeline before any table is built and is never retried.
type FileMissingError struct {
	Path string
}

func (e *FileMissingError) Error() string {
	return fmt.Sprintf("data file not found: %s (place the .xlsx at the configured path)", e.Path)
}

// Loader reads and normalizes a spreadsheet, memoizing the result per file
// path for the process lifetime. Invalidate drops a cached entry, e.g. when
// the watcher sees the file rewritten.
type Loader struct {
	sheetName string
	mu        sync.RWMutex
	cache     map[string]dataframe.DataFrame
}

func NewLoader(sheetName string) *Loader {
	return &Loader{
		sheetName: sheetName,
		cache:     make(map[string]dataframe.DataFrame),
	}
}

// Load returns the normalized raw table for path, reading the file at most
// once until the entry is invalidated. A missing file yields a
// *FileMissingError.
func (l *Loader) Load(path string) (dataframe.DataFrame, error) {
	l.mu.RLock()
	df, ok := l.cache[path]
	l.mu.RUnlock()
	if ok {
		return df, nil
	}

	if _, err := os.Stat(path); err != nil {
		return dataframe.DataFrame{}, &FileMissingError{Path: path}
	}

	raw, err := ReadXLSX(path, l.sheetName)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	df = processor.Normalize(raw)

	l.mu.Lock()
	l.cache[path] = df
	l.mu.Unlock()
	return df, nil
}

// Invalidate drops the cached table for path; the next Load re-reads it.
func (l *Loader) Invalidate(path string) {
	l.mu.Lock()
	delete(l.cache, path)
	l.mu.Unlock()
}
