package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/soderasen-au/go-common/util"
)

func TestAuditLog(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "audit.csv")
	file := filepath.Join(dir, "sales.xlsx")
	if err := os.WriteFile(file, []byte("12345"), 0644); err != nil {
		t.Fatal(err)
	}
	rr := &ReportResult{ID: "r1", ReportFile: util.Ptr(file), Tables: 2, PrintedRows: 12, Placements: 40}

	audit, res := NewAuditLog(fn)
	if res != nil {
		t.Fatalf("NewAuditLog() error = %v", res)
	}
	for _, step := range []string{"a", "b"} {
		if res := audit.Record(NewAuditRecord("nightly", step, rr)); res != nil {
			t.Fatalf("Record() error = %v", res)
		}
	}
	audit.Close()
	if res := audit.Record(NewAuditRecord("nightly", "c", rr)); res == nil {
		t.Errorf("expected error on closed log")
	}

	// reopening appends without a second header
	audit, res = NewAuditLog(fn)
	if res != nil {
		t.Fatalf("NewAuditLog() error = %v", res)
	}
	if res := audit.Record(NewAuditRecord("nightly", "d", rr)); res != nil {
		t.Fatalf("Record() error = %v", res)
	}
	audit.Close()

	records := make([]*AuditRecord, 0)
	data, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		t.Fatalf("UnmarshalBytes() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	got := records[2]
	if got.Step != "d" || got.Format != "xlsx" || got.FileSize != 5 || got.TotalRows != 12 || got.Placements != 40 {
		t.Errorf("unexpected record %+v", got)
	}
}
