package entity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Header names recognised by ParseRegistrants.
const (
	ColumnName  = "Name"
	ColumnEmail = "Email"
)

// ParseRegistrants reads a comma separated table whose header names the
// columns. Column order is free and extra columns are ignored. A missing Name
// or Email column, or a short row, yields registrants with empty fields; those
// rows are kept so the caller can skip them. An empty source yields no rows.
func ParseRegistrants(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}

	nameIdx, emailIdx := -1, -1
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		switch strings.TrimSpace(col) {
		case ColumnName:
			if nameIdx < 0 {
				nameIdx = i
			}
		case ColumnEmail:
			if emailIdx < 0 {
				emailIdx = i
			}
		}
	}

	var rows []Row
	for n := 1; ; n++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
		}

		rows = append(rows, Row{
			Number: n,
			Registrant: Registrant{
				Name:  field(record, nameIdx),
				Email: field(record, emailIdx),
			},
		})
	}

	return rows, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
