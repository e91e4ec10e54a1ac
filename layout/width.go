package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type WidthMethod string

const (
	WidthHeaders WidthMethod = "headers"
	WidthData    WidthMethod = "data"
	WidthAll     WidthMethod = "all"
)

// Margin is added to every computed width.
const Margin = 1

// ParseWidthMethod defaults an empty string to headers.
func ParseWidthMethod(s string) (WidthMethod, error) {
	switch m := WidthMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return WidthHeaders, nil
	case WidthHeaders, WidthData, WidthAll:
		return m, nil
	default:
		return "", newError(ErrInvalidWidthMethod, s, "valid methods are headers, data, all")
	}
}

// Wrap divides label widths by Rows when labels are allowed to wrap.
type Wrap struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Rows    int  `json:"rows" yaml:"rows"`
}

// DisplayWidth counts terminal cells, East-Asian wide runes as two.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func labelWidth(label string, wrap Wrap) int {
	w := DisplayWidth(label)
	if wrap.Enabled && wrap.Rows > 1 {
		w = (w + wrap.Rows - 1) / wrap.Rows
	}
	return w + Margin
}

func dataWidth(values []string) int {
	w := 0
	for _, v := range values {
		w = max(w, DisplayWidth(v))
	}
	return w + Margin
}

// PlanWidths computes one width per label. content[i] holds the rendered
// values of column i; missing entries count as empty columns.
func PlanWidths(labels []string, content [][]string, method WidthMethod, wrap Wrap) ([]int, error) {
	method, err := ParseWidthMethod(string(method))
	if err != nil {
		return nil, err
	}

	ret := make([]int, len(labels))
	for i, lbl := range labels {
		var values []string
		if i < len(content) {
			values = content[i]
		}
		switch method {
		case WidthHeaders:
			ret[i] = labelWidth(lbl, wrap)
		case WidthData:
			ret[i] = dataWidth(values)
		case WidthAll:
			ret[i] = max(labelWidth(lbl, wrap), dataWidth(values))
		}
	}
	return ret, nil
}

// ReconcileWidths merges the widths of two tables sharing the same physical
// columns. The shorter list is padded with zeros.
func ReconcileWidths(a, b []int) []int {
	ret := make([]int, max(len(a), len(b)))
	for i := range ret {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		ret[i] = max(x, y)
	}
	return ret
}
