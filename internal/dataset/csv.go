package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"catalogprep/internal/fileutil"
)

// LoadFeatures reads a features CSV from path.
func LoadFeatures(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	table, err := ReadFeatures(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return table, nil
}

// ReadFeatures parses a features table. Raw tables carry designation and
// description; fused tables carry descriptif instead.
func ReadFeatures(r io.Reader) (*Table, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	cols := columnIndex(header)
	productCol, ok := cols[ColumnProductID]
	if !ok {
		return nil, fmt.Errorf("missing %q column", ColumnProductID)
	}
	imageCol, ok := cols[ColumnImageID]
	if !ok {
		return nil, fmt.Errorf("missing %q column", ColumnImageID)
	}
	descriptifCol, fused := cols[ColumnDescriptif]
	designationCol, hasDesignation := cols[ColumnDesignation]
	descriptionCol, hasDescription := cols[ColumnDescription]
	if !fused && !hasDesignation {
		return nil, fmt.Errorf("missing %q or %q column", ColumnDesignation, ColumnDescriptif)
	}

	table := &Table{Records: make([]Record, 0, len(rows)), Fused: fused}
	for _, row := range rows {
		rec := Record{
			Index:     cell(row, 0),
			ProductID: cell(row, productCol),
			ImageID:   cell(row, imageCol),
		}
		if fused {
			rec.Descriptif = cell(row, descriptifCol)
		} else {
			rec.Designation = cell(row, designationCol)
			if hasDescription {
				rec.Description = cell(row, descriptionCol)
			}
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

// LoadLabels reads a labels CSV from path.
func LoadLabels(path string) (Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	labels, err := ReadLabels(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return labels, nil
}

// ReadLabels parses an index,prdtypecode table.
func ReadLabels(r io.Reader) (Labels, error) {
	index, values, err := ReadColumn(r, ColumnLabel)
	if err != nil {
		return nil, err
	}
	labels := make(Labels, len(index))
	for i := range index {
		labels[i] = Label{Index: index[i], Code: values[i]}
	}
	return labels, nil
}

// ReadColumn parses an index column plus the named value column.
func ReadColumn(r io.Reader, name string) (index, values []string, err error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, nil, err
	}
	col, ok := columnIndex(header)[name]
	if !ok {
		return nil, nil, fmt.Errorf("missing %q column", name)
	}
	index = make([]string, len(rows))
	values = make([]string, len(rows))
	for i, row := range rows {
		index[i] = cell(row, 0)
		values[i] = cell(row, col)
	}
	return index, values, nil
}

// WriteFeatures writes table as CSV. Fused tables drop the raw text columns.
func WriteFeatures(w io.Writer, table *Table) error {
	cw := csv.NewWriter(w)
	header := []string{"", ColumnDesignation, ColumnDescription, ColumnProductID, ColumnImageID}
	if table.Fused {
		header = []string{"", ColumnProductID, ColumnImageID, ColumnDescriptif}
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range table.Records {
		row := []string{rec.Index, rec.Designation, rec.Description, rec.ProductID, rec.ImageID}
		if table.Fused {
			row = []string{rec.Index, rec.ProductID, rec.ImageID, rec.Descriptif}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLabels writes labels as index,prdtypecode.
func WriteLabels(w io.Writer, labels Labels) error {
	index := make([]string, len(labels))
	values := make([]string, len(labels))
	for i, l := range labels {
		index[i] = l.Index
		values[i] = l.Code
	}
	return WriteColumn(w, ColumnLabel, index, values)
}

// WriteColumn writes an index column plus one named value column.
func WriteColumn(w io.Writer, name string, index, values []string) error {
	if len(index) != len(values) {
		return fmt.Errorf("column %q has %d values for %d index entries", name, len(values), len(index))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"", name}); err != nil {
		return err
	}
	for i := range index {
		if err := cw.Write([]string{index[i], values[i]}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeFeatures renders table to CSV bytes.
func EncodeFeatures(table *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteFeatures(&buf, table); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFeaturesFile atomically writes table to path.
func WriteFeaturesFile(path string, table *Table) error {
	data, err := EncodeFeatures(table)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

// WriteLabelsFile atomically writes labels to path.
func WriteLabelsFile(path string, labels Labels) error {
	var buf bytes.Buffer
	if err := WriteLabels(&buf, labels); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

func readAll(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("empty file")
	}
	if err != nil {
		return nil, nil, err
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return header, rows, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
