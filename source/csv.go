package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/gocarina/gocsv"
	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-hiertable/layout"
)

// CSVSource describes a pivoted csv file: the first HeaderRows lines hold
// the column labels (two lines give outer/inner columns) and the first
// RowIndexLevels fields of every line hold the row labels.
type CSVSource struct {
	Path           string   `json:"path" yaml:"path"`
	RowIndexLevels int      `json:"row_index_levels,omitempty" yaml:"row_index_levels,omitempty"`
	HeaderRows     int      `json:"header_rows,omitempty" yaml:"header_rows,omitempty"`
	IndexNames     []string `json:"index_names,omitempty" yaml:"index_names,omitempty"`
	Comma          string   `json:"comma,omitempty" yaml:"comma,omitempty"`
}

func (s *CSVSource) Validate() *util.Result {
	if s.Path == "" {
		return util.MsgError("CSVSource", "no path")
	}
	if s.RowIndexLevels == 0 {
		s.RowIndexLevels = 1
	}
	if s.HeaderRows == 0 {
		s.HeaderRows = 1
	}
	if s.RowIndexLevels < 0 {
		return util.MsgError("CSVSource", fmt.Sprintf("invalid row_index_levels %d", s.RowIndexLevels))
	}
	if s.HeaderRows > 2 || s.HeaderRows < 0 {
		return util.MsgError("CSVSource", fmt.Sprintf("header_rows must be 1 or 2, got %d", s.HeaderRows))
	}
	if len(s.IndexNames) > 0 && len(s.IndexNames) != s.RowIndexLevels {
		return util.MsgError("CSVSource", fmt.Sprintf("%d index names for %d levels", len(s.IndexNames), s.RowIndexLevels))
	}
	if utf8.RuneCountInString(s.Comma) > 1 {
		return util.MsgError("CSVSource", fmt.Sprintf("invalid comma `%s`", s.Comma))
	}
	return nil
}

func (s CSVSource) newReader(in io.Reader) gocsv.CSVReader {
	comma, _ := utf8.DecodeRuneInString(s.Comma)
	if s.Comma == "" || comma == ',' {
		return gocsv.LazyCSVReader(in)
	}
	r := csv.NewReader(in)
	r.Comma = comma
	r.LazyQuotes = true
	return r
}

// fillForward repeats the last non-empty label into blank cells, the way
// spreadsheet exports leave outer labels blank after the first row of a
// block.
func fillForward(labels []string) []string {
	ret := make([]string, len(labels))
	last := ""
	for i, l := range labels {
		if l != "" {
			last = l
		}
		ret[i] = last
	}
	return ret
}

func LoadCSV(s CSVSource) (*layout.Table, *util.Result) {
	if res := s.Validate(); res != nil {
		return nil, res.With("Validate")
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, util.Error("OpenFile", err)
	}
	defer f.Close()
	return ReadCSV(f, s)
}

// ReadCSV builds a table from csv text laid out as described by s.
func ReadCSV(in io.Reader, s CSVSource) (*layout.Table, *util.Result) {
	if res := s.Validate(); res != nil {
		return nil, res.With("Validate")
	}
	records, err := s.newReader(in).ReadAll()
	if err != nil {
		return nil, util.Error("ReadAll", err)
	}
	if len(records) < s.HeaderRows {
		return nil, util.MsgError("ReadCSV", fmt.Sprintf("expected %d header rows, got %d lines", s.HeaderRows, len(records)))
	}
	header, body := records[:s.HeaderRows], records[s.HeaderRows:]
	ni := s.RowIndexLevels
	if len(header[0]) < ni {
		return nil, util.MsgError("ReadCSV", fmt.Sprintf("%d fields is fewer than %d index levels", len(header[0]), ni))
	}

	names := s.IndexNames
	if len(names) == 0 {
		names = header[len(header)-1][:ni]
	}

	var columns layout.ColumnIndex
	leaf := header[len(header)-1][ni:]
	if s.HeaderRows == 2 {
		outer := fillForward(header[0][ni:])
		columns, err = layout.TwoLevelColumns(layout.NewIndexLevel("", outer...), layout.NewIndexLevel("", leaf...))
		if err != nil {
			return nil, util.Error("TwoLevelColumns", err)
		}
	} else {
		columns = layout.FlatColumns(leaf...)
	}

	labels := make([][]string, ni)
	values := make([][]any, 0, len(body))
	for ri, rec := range body {
		if len(rec) != ni+columns.Len() {
			return nil, util.MsgError("ReadCSV", fmt.Sprintf("line %d has %d fields, expected %d", ri+s.HeaderRows+1, len(rec), ni+columns.Len()))
		}
		for li := 0; li < ni; li++ {
			labels[li] = append(labels[li], rec[li])
		}
		row := make([]any, columns.Len())
		for ci, cell := range rec[ni:] {
			row[ci] = ParseValue(cell)
		}
		values = append(values, row)
	}

	rowIndex := make([]layout.IndexLevel, ni)
	for li := range labels {
		lbls := labels[li]
		if li < ni-1 {
			lbls = fillForward(lbls)
		}
		rowIndex[li] = layout.NewIndexLevel(names[li], lbls...)
	}

	t, err := layout.NewTable(rowIndex, columns, values)
	if err != nil {
		return nil, util.Error("NewTable", err)
	}
	return t, nil
}
