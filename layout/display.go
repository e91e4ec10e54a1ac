package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = map[Format]string{
	FormatDate:        "2006-01-02",
	FormatDateAlt:     "01/02/2006",
	FormatDatetime:    "2006-01-02 15:04:05",
	FormatDatetimeAlt: "01/02/2006 03:04 PM",
}

// SerialTime converts a spreadsheet serial date (days since 1899-12-30) to
// a time.
func SerialTime(serial float64) time.Time {
	epoch := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	return epoch.Add(time.Duration(serial * float64(24*time.Hour)))
}

// GroupDigits renders num with the given number of decimals and a thousands
// separator between integer digit groups.
func GroupDigits(num float64, decimals int, sep string) string {
	s := strconv.FormatFloat(math.Abs(num), 'f', decimals, 64)
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	groups := make([]string, 0, len(intPart)/3+1)
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	ret := strings.Join(groups, sep)
	if hasFrac {
		ret += "." + fracPart
	}
	if num < 0 && strings.Trim(ret, "0.,") != "" {
		ret = "-" + ret
	}
	return ret
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func formatNumber(num float64, f Format) string {
	switch f {
	case FormatNumeric:
		return GroupDigits(num, 0, ",")
	case FormatDecimal1:
		return GroupDigits(num, 1, ",")
	case FormatDecimal2:
		return GroupDigits(num, 2, ",")
	case FormatDollar, FormatDollarCents:
		decimals := 0
		if f == FormatDollarCents {
			decimals = 2
		}
		s := GroupDigits(num, decimals, ",")
		if strings.HasPrefix(s, "-") {
			return "-$" + s[1:]
		}
		return "$" + s
	case FormatPercent:
		return strconv.FormatFloat(num*100, 'f', 0, 64) + "%"
	case FormatPercent1:
		return strconv.FormatFloat(num*100, 'f', 1, 64) + "%"
	case FormatPercent2:
		return strconv.FormatFloat(num*100, 'f', 2, 64) + "%"
	}
	if f.IsDate() {
		return SerialTime(num).Format(dateLayouts[f])
	}
	return strconv.FormatFloat(num, 'f', -1, 64)
}

// DisplayText is the text a spreadsheet shows for v under format f. Width
// planning measures this text rather than the raw value.
func DisplayText(v any, f Format, null string) string {
	if v == nil {
		return null
	}
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		if layout, ok := dateLayouts[f]; ok {
			return x.Format(layout)
		}
		return x.Format(dateLayouts[FormatDatetime])
	case bool:
		return strconv.FormatBool(x)
	}
	if num, ok := toFloat(v); ok {
		if f == FormatText {
			return strconv.FormatFloat(num, 'f', -1, 64)
		}
		return formatNumber(num, f)
	}
	return fmt.Sprint(v)
}
