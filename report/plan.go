package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-hiertable/layout"
)

// PlanRecord is one placement as written to a plan file.
type PlanRecord struct {
	Seq    int    `csv:"seq"`
	Kind   string `csv:"kind"`
	Range  string `csv:"range"`
	Axis   string `csv:"axis"`
	Level  int    `csv:"level"`
	Role   string `csv:"role"`
	Format string `csv:"format"`
	Edges  string `csv:"edges"`
	Align  string `csv:"align"`
	Value  string `csv:"value"`
}

// RangeName renders a placement range as A1 or A1:B2.
func RangeName(rng layout.Range) (string, error) {
	tl, err := CellName(rng.TopLeft())
	if err != nil {
		return "", err
	}
	if rng.IsCell() {
		return tl, nil
	}
	br, err := CellName(rng.BottomRight())
	if err != nil {
		return "", err
	}
	return tl + ":" + br, nil
}

func NewPlanRecords(placements []layout.Placement) ([]*PlanRecord, *util.Result) {
	ret := make([]*PlanRecord, 0, len(placements))
	for i, p := range placements {
		rng, err := RangeName(p.Range)
		if err != nil {
			return nil, util.Error(fmt.Sprintf("RangeName(%s)", p.Range), err)
		}
		rec := &PlanRecord{
			Seq:    i,
			Kind:   string(p.Kind),
			Range:  rng,
			Axis:   p.Axis.String(),
			Level:  p.Level,
			Role:   string(p.Role),
			Format: string(p.Format),
			Edges:  p.Edges.String(),
			Align:  string(p.Align),
		}
		if p.Value != nil {
			rec.Value = fmt.Sprint(p.Value)
		}
		ret = append(ret, rec)
	}
	return ret, nil
}

// WritePlan dumps placements as CSV, one row per placement in apply order.
func WritePlan(w io.Writer, placements []layout.Placement) *util.Result {
	records, res := NewPlanRecords(placements)
	if res != nil {
		return res.With("NewPlanRecords")
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return util.Error("MarshalPlan", err)
	}
	return nil
}
