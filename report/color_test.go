package report

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    *ARGBColor
		wantErr bool
	}{
		{"Empty", "", nil, false},
		{"Hex", "#1F4E78", &ARGBColor{A: 255, R: 31, G: 78, B: 120}, false},
		{"RGB", "rgb(10, 20, 30)", &ARGBColor{A: 255, R: 10, G: 20, B: 30}, false},
		{"ARGB", "ARGB(128,1,2,3)", &ARGBColor{A: 128, R: 1, G: 2, B: 3}, false},
		{"Named", "LightGray", &ARGBColor{R: 192, G: 192, B: 192}, false},
		{"ShortHex", "#FFF", nil, true},
		{"OutOfRange", "RGB(300,0,0)", nil, true},
		{"Unknown", "purple-ish", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := ParseColor(tt.text)
			if (res != nil) != tt.wantErr {
				t.Fatalf("ParseColor() error = %v, wantErr %v", res, tt.wantErr)
			}
			if tt.want == nil {
				if got != nil {
					t.Errorf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("ParseColor() got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAssignBgStyle(t *testing.T) {
	dark := &excelize.Style{}
	ARGBColor{R: 0, G: 0, B: 128}.AssignBgStyle(dark)
	if dark.Fill.Color[0] != "#000080" || dark.Font.Color != "#FFFFFF" {
		t.Errorf("unexpected dark style fill=%v font=%v", dark.Fill.Color, dark.Font.Color)
	}

	// an explicit font color survives the background
	light := &excelize.Style{}
	assignColors(light, &ARGBColor{R: 255, G: 255, B: 0}, &ARGBColor{R: 255})
	if light.Font.Color != "#FF0000" {
		t.Errorf("expected font color #FF0000, got %s", light.Font.Color)
	}
}
