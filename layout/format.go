package layout

import "strings"

// Format is a display-format tag for data cells.
type Format string

const (
	FormatNone        Format = ""
	FormatNumeric     Format = "numeric"
	FormatDecimal1    Format = "decimal_1"
	FormatDecimal2    Format = "decimal_2"
	FormatDollar      Format = "dollar"
	FormatDollarCents Format = "dollar_cents"
	FormatPercent     Format = "percent"
	FormatPercent1    Format = "percent_1"
	FormatPercent2    Format = "percent_2"
	FormatDate        Format = "date"
	FormatDateAlt     Format = "date_alt"
	FormatDatetime    Format = "datetime"
	FormatDatetimeAlt Format = "datetime_alt"
	FormatText        Format = "text"
)

var numFormats = map[Format]string{
	FormatNumeric:     "#,##0",
	FormatDecimal1:    "#,##0.0",
	FormatDecimal2:    "#,##0.00",
	FormatDollar:      "$#,##0",
	FormatDollarCents: "$#,##0.00",
	FormatPercent:     "0%",
	FormatPercent1:    "0.0%",
	FormatPercent2:    "0.00%",
	FormatDate:        "yyyy-mm-dd",
	FormatDateAlt:     "mm/dd/yyyy",
	FormatDatetime:    "yyyy-mm-dd hh:mm:ss",
	FormatDatetimeAlt: "mm/dd/yyyy hh:mm AM/PM",
	FormatText:        "@",
}

// ParseFormat accepts the tag names above; "decimal" is kept as an alias of
// decimal_2.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatNone, nil
	}
	if s == "decimal" {
		return FormatDecimal2, nil
	}
	f := Format(s)
	if _, ok := numFormats[f]; !ok {
		return FormatNone, newError(ErrInvalidFormat, s, "unknown data format")
	}
	return f, nil
}

// NumFmt returns the spreadsheet number format string, "" for FormatNone.
func (f Format) NumFmt() string {
	return numFormats[f]
}

func (f Format) IsPercent() bool {
	return f == FormatPercent || f == FormatPercent1 || f == FormatPercent2
}

func (f Format) IsDate() bool {
	return f == FormatDate || f == FormatDateAlt || f == FormatDatetime || f == FormatDatetimeAlt
}

type Align string

const (
	AlignNone   Align = ""
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

func ParseAlign(s string) (Align, error) {
	switch a := Align(strings.ToLower(strings.TrimSpace(s))); a {
	case AlignNone, AlignLeft, AlignCenter, AlignRight:
		return a, nil
	default:
		return AlignNone, newError(ErrInvalidAlign, s, "alignment must be left, center or right")
	}
}

// Role tells the styling collaborator what a placement is, independent of
// colors and fonts.
type Role string

const (
	RoleHeader          Role = "header"
	RoleHeaderHighlight Role = "header_highlight"
	RoleIndexName       Role = "index_name"
	RoleIndexLabel      Role = "index_label"
	RoleData            Role = "data"
	RoleBoundary        Role = "boundary"
	RolePlaceholder     Role = "placeholder"
)

type Edges uint8

const (
	EdgeTop Edges = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e Edges) Has(edge Edges) bool {
	return e&edge != 0
}

func (e Edges) String() string {
	if e == 0 {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, x := range []struct {
		e Edges
		n string
	}{{EdgeTop, "top"}, {EdgeBottom, "bottom"}, {EdgeLeft, "left"}, {EdgeRight, "right"}} {
		if e.Has(x.e) {
			parts = append(parts, x.n)
		}
	}
	return strings.Join(parts, "|")
}
