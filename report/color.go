package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soderasen-au/go-common/util"
	"github.com/xuri/excelize/v2"
)

type ARGBColor struct {
	A int
	R int
	G int
	B int
}

var (
	PredefinedColorMap = map[string]*ARGBColor{
		"yellow":       {R: 255, G: 255, B: 0},
		"white":        {R: 255, G: 255, B: 255},
		"red":          {R: 128, G: 0, B: 0},
		"magenta":      {R: 128, G: 0, B: 128},
		"lightred":     {R: 255, G: 0, B: 0},
		"lightmagenta": {R: 255, G: 0, B: 255},
		"lightgreen":   {R: 0, G: 255, B: 0},
		"lightgray":    {R: 192, G: 192, B: 192},
		"lightcyan":    {R: 0, G: 255, B: 255},
		"lightblue":    {R: 0, G: 0, B: 255},
		"green":        {R: 0, G: 238, B: 0},
		"darkgray":     {R: 128, G: 128, B: 128},
		"cyan":         {R: 0, G: 128, B: 128},
		"brown":        {R: 128, G: 128, B: 0},
		"blue":         {R: 0, G: 0, B: 128},
		"black":        {R: 0, G: 0, B: 0},
	}
)

func (c ARGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c ARGBColor) Luminance() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255.0
}

func ensureFont(excelStyle *excelize.Style) *excelize.Font {
	if excelStyle.Font == nil {
		excelStyle.Font = &excelize.Font{}
	}
	return excelStyle.Font
}

// AssignBgStyle fills the cell and, unless a font color is already set,
// picks black or white text by luminance.
func (c ARGBColor) AssignBgStyle(excelStyle *excelize.Style) {
	excelStyle.Fill.Type = "pattern"
	excelStyle.Fill.Pattern = 1
	excelStyle.Fill.Color = []string{c.Hex()}

	if ensureFont(excelStyle).Color == "" {
		c.AssignLuminanceFont(excelStyle)
	}
}

func (c ARGBColor) AssignLuminanceFont(excelStyle *excelize.Style) {
	d := 255
	if c.Luminance() > 0.5 {
		d = 0
	}
	ensureFont(excelStyle).Color = fmt.Sprintf("#%02X%02X%02X", d, d, d)
}

func (c ARGBColor) AssignFontStyle(excelStyle *excelize.Style) {
	ensureFont(excelStyle).Color = c.Hex()
}

func parseChannels(t string, n int) ([]int, *util.Result) {
	open := strings.Index(t, "(")
	if open < 0 || !strings.HasSuffix(t, ")") {
		return nil, util.MsgError("ParseColor", "missing parentheses")
	}
	cv := strings.Split(t[open+1:len(t)-1], ",")
	if len(cv) != n {
		return nil, util.MsgError("ParseColor", "invalid color sections")
	}
	ret := make([]int, n)
	for i, s := range cv {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 || v > 255 {
			return nil, util.MsgError("ParseColor", fmt.Sprintf("invalid color code `%s`", s))
		}
		ret[i] = v
	}
	return ret, nil
}

// ParseColor accepts "#RRGGBB", "RGB(r,g,b)", "ARGB(a,r,g,b)" and the
// predefined color names. An empty string is no color.
func ParseColor(t string) (*ARGBColor, *util.Result) {
	t = strings.ToUpper(t)
	t = strings.ReplaceAll(t, " ", "")
	if t == "" {
		return nil, nil
	}

	switch {
	case strings.HasPrefix(t, "#"):
		if len(t) != 7 {
			return nil, util.MsgError("ParseColor", fmt.Sprintf("invalid hex color `%s`", t))
		}
		v, err := strconv.ParseUint(t[1:], 16, 32)
		if err != nil {
			return nil, util.Error("ParseColor", err)
		}
		return &ARGBColor{A: 255, R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}, nil
	case strings.HasPrefix(t, "ARGB"):
		cv, res := parseChannels(t, 4)
		if res != nil {
			return nil, res
		}
		return &ARGBColor{A: cv[0], R: cv[1], G: cv[2], B: cv[3]}, nil
	case strings.HasPrefix(t, "RGB"):
		cv, res := parseChannels(t, 3)
		if res != nil {
			return nil, res
		}
		return &ARGBColor{A: 255, R: cv[0], G: cv[1], B: cv[2]}, nil
	}

	if argb, ok := PredefinedColorMap[strings.ToLower(t)]; ok {
		c := *argb
		return &c, nil
	}
	return nil, util.MsgError("ParseColor", fmt.Sprintf("unknown color `%s`", t))
}

// Palette holds the parsed report colors; nil means the workbook default.
type Palette struct {
	HeaderBg      *ARGBColor
	HeaderFont    *ARGBColor
	IndexBg       *ARGBColor
	IndexFont     *ARGBColor
	HighlightBg   *ARGBColor
	HighlightFont *ARGBColor
}

func NewPalette(r Report) (*Palette, *util.Result) {
	p := &Palette{}
	for _, c := range []struct {
		text string
		dst  **ARGBColor
	}{
		{r.HeaderBgColor, &p.HeaderBg},
		{r.HeaderFontColor, &p.HeaderFont},
		{r.IndexBgColor, &p.IndexBg},
		{r.IndexFontColor, &p.IndexFont},
		{r.HighlightBgColor, &p.HighlightBg},
		{r.HighlightFontColor, &p.HighlightFont},
	} {
		color, res := ParseColor(c.text)
		if res != nil {
			return nil, res.With("NewPalette")
		}
		*c.dst = color
	}
	return p, nil
}

func assignColors(excelStyle *excelize.Style, bg, font *ARGBColor) {
	if font != nil {
		font.AssignFontStyle(excelStyle)
	}
	if bg != nil {
		bg.AssignBgStyle(excelStyle)
	}
}
