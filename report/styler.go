package report

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"
	"github.com/xuri/excelize/v2"

	"github.com/soderasen-au/go-hiertable/layout"
)

// cellStyle is the style descriptor of one cell. Style ids are cached per
// descriptor.
type cellStyle struct {
	Role   layout.Role
	Format layout.Format
	Align  layout.Align
	Edges  layout.Edges
}

// ExcelStyler applies layout placements to one sheet. Edges accumulate per
// cell, so a border drawn before or after a value write survives both.
type ExcelStyler struct {
	File    *excelize.File
	Sheet   string
	Palette Palette
	Wrap    bool
	Logger  *zerolog.Logger

	styles map[cellStyle]int
	cells  map[layout.Cell]cellStyle
}

func NewExcelStyler(f *excelize.File, sheet string, palette Palette, wrap bool, logger *zerolog.Logger) *ExcelStyler {
	if logger == nil {
		logger = loggers.NullLogger
	}
	return &ExcelStyler{
		File:    f,
		Sheet:   sheet,
		Palette: palette,
		Wrap:    wrap,
		Logger:  logger,
		styles:  make(map[cellStyle]int),
		cells:   make(map[layout.Cell]cellStyle),
	}
}

// CellName converts a zero-based grid cell to an A1 name.
func CellName(c layout.Cell) (string, error) {
	return excelize.CoordinatesToCellName(c.Col+1, c.Row+1)
}

func borders(e layout.Edges) []excelize.Border {
	ret := make([]excelize.Border, 0, 4)
	for _, x := range []struct {
		e layout.Edges
		t string
	}{{layout.EdgeTop, "top"}, {layout.EdgeBottom, "bottom"}, {layout.EdgeLeft, "left"}, {layout.EdgeRight, "right"}} {
		if e.Has(x.e) {
			ret = append(ret, excelize.Border{Type: x.t, Color: "000000", Style: 1})
		}
	}
	return ret
}

func (s *ExcelStyler) excelStyle(st cellStyle) *excelize.Style {
	excelStyle := &excelize.Style{Border: borders(st.Edges)}
	align := &excelize.Alignment{Horizontal: string(st.Align)}

	switch st.Role {
	case layout.RoleHeader:
		excelStyle.Font = &excelize.Font{Bold: true}
		assignColors(excelStyle, s.Palette.HeaderBg, s.Palette.HeaderFont)
		align.Horizontal = "center"
		align.Vertical = "center"
		align.WrapText = s.Wrap
	case layout.RoleHeaderHighlight:
		excelStyle.Font = &excelize.Font{Bold: true}
		bg, font := s.Palette.HighlightBg, s.Palette.HighlightFont
		if bg == nil {
			bg, font = s.Palette.HeaderBg, s.Palette.HeaderFont
		}
		assignColors(excelStyle, bg, font)
		align.Horizontal = "center"
		align.Vertical = "center"
		align.WrapText = s.Wrap
	case layout.RoleIndexName:
		excelStyle.Font = &excelize.Font{Bold: true}
		assignColors(excelStyle, s.Palette.HeaderBg, s.Palette.HeaderFont)
		align.Vertical = "center"
		align.WrapText = s.Wrap
	case layout.RoleIndexLabel:
		excelStyle.Font = &excelize.Font{Bold: true}
		assignColors(excelStyle, s.Palette.IndexBg, s.Palette.IndexFont)
		align.Vertical = "center"
	case layout.RolePlaceholder:
		align.Horizontal = "center"
		align.Vertical = "center"
	case layout.RoleData:
		if numFmt := st.Format.NumFmt(); numFmt != "" {
			excelStyle.CustomNumFmt = &numFmt
		}
	}
	if st.Align != layout.AlignNone {
		align.Horizontal = string(st.Align)
	}
	if *align != (excelize.Alignment{}) {
		excelStyle.Alignment = align
	}
	return excelStyle
}

func (s *ExcelStyler) styleID(st cellStyle) (int, *util.Result) {
	if id, ok := s.styles[st]; ok {
		s.Logger.Trace().Msgf("style cache hit: %+v => %d", st, id)
		return id, nil
	}
	id, err := s.File.NewStyle(s.excelStyle(st))
	if err != nil {
		return 0, util.Error("NewStyle", err)
	}
	s.styles[st] = id
	return id, nil
}

func (s *ExcelStyler) setStyle(c layout.Cell, st cellStyle) *util.Result {
	s.cells[c] = st
	id, res := s.styleID(st)
	if res != nil {
		return res
	}
	name, err := CellName(c)
	if err != nil {
		return util.Error("CoordinatesToCellName", err)
	}
	if err := s.File.SetCellStyle(s.Sheet, name, name, id); err != nil {
		return util.Error("SetCellStyle", err)
	}
	return nil
}

func (s *ExcelStyler) setValue(c layout.Cell, v any) *util.Result {
	name, err := CellName(c)
	if err != nil {
		return util.Error("CoordinatesToCellName", err)
	}
	if err := s.File.SetCellValue(s.Sheet, name, v); err != nil {
		return util.Error("SetCellValue", err)
	}
	return nil
}

// Apply carries out one placement. Values go to the top-left cell of the
// range; styles go to every cell.
func (s *ExcelStyler) Apply(p layout.Placement) *util.Result {
	tl := p.Range.TopLeft()
	tlName, err := CellName(tl)
	if err != nil {
		return util.LogError(s.Logger, "CoordinatesToCellName", err)
	}
	cellLogger := s.Logger.With().Str("coor", tl.String()).Str("name", tlName).Logger()

	switch p.Kind {
	case layout.KindMerge:
		brName, err := CellName(p.Range.BottomRight())
		if err != nil {
			return util.LogError(&cellLogger, "CoordinatesToCellName", err)
		}
		cellLogger.Debug().Msgf("merge cells %s:%s", tlName, brName)
		if err := s.File.MergeCell(s.Sheet, tlName, brName); err != nil {
			return util.LogError(&cellLogger, "MergeCell", err)
		}
		if res := s.setValue(tl, p.Value); res != nil {
			return res.LogWith(&cellLogger, "setValue")
		}
	case layout.KindWrite:
		cellLogger.Debug().Msgf("print cell: %v", p.Value)
		if res := s.setValue(tl, p.Value); res != nil {
			return res.LogWith(&cellLogger, "setValue")
		}
	case layout.KindBorder:
		cellLogger.Debug().Msgf("border %s on %s", p.Edges, p.Range)
	default:
		return util.LogMsgError(&cellLogger, "Apply", fmt.Sprintf("unknown placement kind `%s`", p.Kind))
	}

	for r := p.Range.Top; r <= p.Range.Bottom; r++ {
		for c := p.Range.Left; c <= p.Range.Right; c++ {
			cell := layout.Cell{Row: r, Col: c}
			st := s.cells[cell]
			st.Edges |= p.Edges
			if p.Kind != layout.KindBorder {
				st.Role = p.Role
				st.Format = p.Format
				st.Align = p.Align
			}
			if res := s.setStyle(cell, st); res != nil {
				return res.LogWith(&cellLogger, "setStyle")
			}
		}
	}
	return nil
}

// Styles reports how many distinct styles were created.
func (s *ExcelStyler) Styles() int {
	return len(s.styles)
}
