// Package sheet reads the restaurant spreadsheet export.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"restaurant_refresh/internal/domain"
)

var ErrDecode = errors.New("sheet: input is not valid UTF-8")

// Columns is the header set every input file must carry.
var Columns = []string{
	"Name", "Address", "City", "Neighborhood", "Food Type", "Menu",
	"Occasion", "Type", "Trip Status", "Reservation", "Region", "State",
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// Load reads path and returns the kept rows in file order.
func Load(path string) ([]domain.Restaurant, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes a UTF-8 (optionally BOM-prefixed) CSV export.
func Parse(b []byte) ([]domain.Restaurant, error) {
	b = bytes.TrimPrefix(b, bom)
	if !utf8.Valid(b) {
		return nil, ErrDecode
	}

	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("sheet: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("sheet: header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, c := range Columns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("sheet: missing column %q", c)
		}
	}

	var out []domain.Restaurant
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sheet: %w", err)
		}
		get := func(col string) string {
			i := idx[col]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		rec := domain.Restaurant{
			Name:         get("Name"),
			Address:      get("Address"),
			City:         get("City"),
			Neighborhood: get("Neighborhood"),
			FoodType:     get("Food Type"),
			Menu:         get("Menu"),
			Occasion:     get("Occasion"),
			Type:         get("Type"),
			Status:       get("Trip Status"),
			Reservation:  get("Reservation"),
			Region:       get("Region"),
			State:        get("State"),
		}
		if !Keep(rec) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Keep reports whether a row is a real entry rather than a template or blank line.
func Keep(r domain.Restaurant) bool {
	if r.Name == "" || r.Name == domain.TemplateSentinel {
		return false
	}
	return r.City != "" && r.City != domain.TemplateSentinel
}
