// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes a cleaned table and its column types to disk.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sheetclean/pkg/types"
)

// TypeRecord describes one cleaned column in the types artifact.
type TypeRecord struct {
	Column   string      `json:"column" yaml:"column"`
	DType    types.DType `json:"dtype" yaml:"dtype"`
	Label    string      `json:"label" yaml:"label"`
	Nullable bool        `json:"nullable" yaml:"nullable"`
}

// TypeRecords lists the column types of table in column order.
func TypeRecords(table *types.CleanedTable) []TypeRecord {
	records := make([]TypeRecord, len(table.Columns))
	for i, col := range table.Columns {
		records[i] = TypeRecord{
			Column:   col.Name,
			DType:    col.DType,
			Label:    col.Label,
			Nullable: col.Nullable(),
		}
	}
	return records
}

// EncodeData writes table as CSV: a header of column names followed by one
// line per row. Missing values are written as naRep.
func EncodeData(w io.Writer, table *types.CleanedTable, naRep string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Names()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(table.Columns))
	for row := 0; row < table.Len(); row++ {
		for c, col := range table.Columns {
			record[c] = col.Values[row].Format(naRep)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", row+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// EncodeTypes writes records in the given format.
func EncodeTypes(w io.Writer, records []TypeRecord, format types.TypesFormat) error {
	switch format {
	case types.TypesCSV, "":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"column", "dtype", "label", "nullable"}); err != nil {
			return err
		}
		for _, r := range records {
			if err := cw.Write([]string{r.Column, string(r.DType), r.Label, strconv.FormatBool(r.Nullable)}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()

	case types.TypesYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()

	case types.TypesJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	return fmt.Errorf("unsupported types format %q", format)
}

// Write produces both artifacts named in cfg. Each is written to a
// temporary file next to its destination; the files are renamed into
// place only after both were written, so a failed run leaves no partial
// output.
func Write(table *types.CleanedTable, cfg types.OutputConfig) error {
	dataTmp, err := writeTemp(cfg.DataPath, func(w io.Writer) error {
		return EncodeData(w, table, cfg.NARep)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", cfg.DataPath, err)
	}

	typesTmp, err := writeTemp(cfg.TypesPath, func(w io.Writer) error {
		return EncodeTypes(w, TypeRecords(table), cfg.TypesFormat)
	})
	if err != nil {
		os.Remove(dataTmp)
		return fmt.Errorf("writing %s: %w", cfg.TypesPath, err)
	}

	if err := os.Rename(dataTmp, cfg.DataPath); err != nil {
		os.Remove(dataTmp)
		os.Remove(typesTmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	if err := os.Rename(typesTmp, cfg.TypesPath); err != nil {
		os.Remove(typesTmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func writeTemp(dest string, encode func(io.Writer) error) (string, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(dest), ".sheetclean-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	encErr := encode(tmpFile)
	closeErr := tmpFile.Close()
	if encErr != nil {
		os.Remove(tmpPath)
		return "", encErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}
	return tmpPath, nil
}
