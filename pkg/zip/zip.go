package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Entry is a single file inside an export archive.
type Entry struct {
	Name string
	Data []byte
}

// Archive bundles the entries into an in-memory zip. Entries with an empty
// name are skipped.
func Archive(entries []Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		w, err := zw.Create(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", entry.Name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", entry.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close archive: %w", err)
	}
	return buf.Bytes(), nil
}
