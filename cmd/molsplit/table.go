package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/katalvlaran/molsplit/dataset"
)

var errMissingColumn = errors.New("molsplit: column not found")

// table is a CSV file held column-wise.
type table struct {
	header []string
	cols   map[string][]string
	rows   int
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "molsplit: open %s", path)
	}
	defer f.Close()

	t, err := parseTable(f)
	if err != nil {
		return nil, errors.Wrapf(err, "molsplit: %s", path)
	}

	return t, nil
}

func parseTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	t := &table{header: header, cols: make(map[string][]string, len(header))}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", t.rows+1)
		}
		for i, name := range header {
			t.cols[name] = append(t.cols[name], rec[i])
		}
		t.rows++
	}

	return t, nil
}

func (t *table) column(name string) ([]string, error) {
	if !lo.Contains(t.header, name) {
		return nil, errors.Wrapf(errMissingColumn, "%q (have %v)", name, t.header)
	}

	return t.cols[name], nil
}

// labelColumn types raw values as Ints when every value is an integer,
// Floats when every value is a number, and Strings otherwise.
func labelColumn(raw []string) dataset.Column {
	ints := make(dataset.Ints, len(raw))
	isInt := true
	for i, s := range raw {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			isInt = false
			break
		}
		ints[i] = v
	}
	if isInt {
		return ints
	}

	floats := make(dataset.Floats, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return dataset.Strings(raw)
		}
		floats[i] = v
	}

	return floats
}
