package catalog

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"shopql/internal/model"

	"github.com/gocarina/gocsv"
)

// decode reads gzipped CSV rows from r. A file with no header yields no rows.
func decode(r io.Reader) ([]model.ProductInput, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var rows []model.ProductInput
	if err := gocsv.Unmarshal(gzipReader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []model.ProductInput{}, nil
		}
		return nil, fmt.Errorf("failed to decode CSV: %w", err)
	}

	for i, row := range rows {
		if strings.TrimSpace(row.Name) == "" {
			// Line 1 is the header.
			return nil, fmt.Errorf("line %d: product name is required", i+2)
		}
	}

	return rows, nil
}
