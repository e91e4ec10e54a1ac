package job

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"
	"github.com/xuri/excelize/v2"

	"github.com/soderasen-au/go-hiertable/report"
)

const scriptTpl = `
name: nightly
output_folder: %[1]s
concurrency: 2
audit_file: %[1]s/audit.csv
vars:
  region: North
steps:
  - cmd: del_file
    target: %[1]s/stale.xlsx
  - name: sales
    cmd: render
    tables:
      - inline: &sales
          index_names: [Region, City]
          row_index:
            - [North, North, South, South]
            - [Oslo, Bergen, Rome, Bari]
          columns: [Revenue, Units]
          values:
            - [1200.5, 3]
            - [800, null]
            - [9000, 12]
            - [15, 2]
    report:
      name: sales-$(region)
      title:
        text: Sales $(region)
      method: all
      null_value: "-"
  - name: flat
    cmd: render
    tables:
      - inline: *sales
    report:
      name: sales-flat
      output_format: csv
  - name: appendix
    cmd: render
    tables:
      - inline: *sales
    report:
      name: sales-$(region)
      is_sub: true
      sheet: appendix
  - cmd: publish
    publish:
      endpoint: %[2]s/files
      chunk_size_mb: 1
`

type uploads struct {
	mu    sync.Mutex
	sizes map[string]int
	next  int
}

func (u *uploads) handler(base func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		defer u.mu.Unlock()
		switch r.Method {
		case http.MethodPost:
			u.next++
			id := fmt.Sprintf("f%d", u.next)
			u.sizes[id] = 0
			w.Header().Set("Location", base()+"/files/"+id)
			w.WriteHeader(http.StatusCreated)
		case http.MethodPatch:
			id := filepath.Base(r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			u.sizes[id] += len(body)
			w.Header().Set("Upload-Offset", strconv.Itoa(u.sizes[id]))
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func TestScript_Run(t *testing.T) {
	up := &uploads{sizes: map[string]int{}}
	var srv *httptest.Server
	srv = httptest.NewServer(up.handler(func() string { return srv.URL }))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stale.xlsx"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	s, res := ParseScript([]byte(fmt.Sprintf(scriptTpl, dir, srv.URL)))
	if res != nil {
		t.Fatalf("ParseScript() error = %v", res)
	}
	s.CreateExecEnv(loggers.CoreDebugLogger)
	req, res := s.NewRequest()
	if res != nil {
		t.Fatalf("NewRequest() error = %v", res)
	}
	if len(req.Tasks) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(req.Tasks))
	}

	batches := req.batches()
	if len(batches) != 4 || len(batches[1]) != 2 {
		t.Errorf("expected the two independent renders to share a batch, got %v", batches)
	}

	ok, results := req.Run(context.Background())
	if !ok {
		t.Fatalf("Run() failed: %v", results)
	}

	if exists, _ := util.Exists(filepath.Join(dir, "stale.xlsx")); exists {
		t.Errorf("stale file should be deleted")
	}

	f, err := excelize.OpenFile(filepath.Join(dir, "sales-North.xlsx"))
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()
	if got, _ := f.GetCellValue("sales-North", "A1"); got != "Sales North" {
		t.Errorf("expected rendered title, got %q", got)
	}
	if got, _ := f.GetCellValue("appendix", "A2"); got != "North" {
		t.Errorf("expected appended sheet, got %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "sales-flat.csv")); err != nil {
		t.Errorf("expected csv output: %v", err)
	}

	// sales-North is rendered twice, the csv once
	if len(s.Env.Reports()) != 3 {
		t.Errorf("expected 3 rendered reports, got %d", len(s.Env.Reports()))
	}
	published, ok := s.Env.Unstash(StashKeyPublished)
	if !ok || len(published.(map[string]string)) != 2 {
		t.Errorf("expected 2 distinct published files, got %v", published)
	}
	if up.next != 3 {
		t.Errorf("expected 3 uploads, got %d", up.next)
	}

	data, err := os.ReadFile(filepath.Join(dir, "audit.csv"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	records := make([]*report.AuditRecord, 0)
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		t.Fatalf("UnmarshalBytes() error = %v", err)
	}
	if len(records) != 3 || records[0].Script != "nightly" {
		t.Errorf("unexpected audit records %+v", records)
	}
}

func TestScript_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"UnknownCmd", "steps:\n  - cmd: explode\n"},
		{"RenderWithoutReport", "steps:\n  - cmd: render\n    tables: [{yaml: a.yaml}]\n"},
		{"RenderWithoutTables", "steps:\n  - cmd: render\n    report: {name: a}\n"},
		{"DuplicateOutput", "steps:\n  - cmd: render\n    tables: [{yaml: a.yaml}]\n    report: {name: a}\n  - cmd: render\n    tables: [{yaml: b.yaml}]\n    report: {name: a}\n"},
		{"PublishWithoutEndpoint", "steps:\n  - cmd: publish\n    publish: {}\n"},
		{"DelFileWithoutTarget", "steps:\n  - cmd: del_file\n"},
		{"BadColor", "steps:\n  - cmd: render\n    tables: [{yaml: a.yaml}]\n    report: {name: a, header_bg_color: nope}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, res := ParseScript([]byte(tt.script))
			if res != nil {
				t.Fatalf("ParseScript() error = %v", res)
			}
			s.CreateExecEnv(loggers.CoreDebugLogger)
			if _, res := s.NewRequest(); res == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestRequest_StopsOnFailure(t *testing.T) {
	dir := t.TempDir()
	script := fmt.Sprintf("output_folder: %s\nsteps:\n  - cmd: render\n    tables: [{yaml: %s}]\n    report: {name: a}\n  - cmd: del_file\n    target: %s\n",
		dir, filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "a.xlsx"))
	s, res := ParseScript([]byte(script))
	if res != nil {
		t.Fatalf("ParseScript() error = %v", res)
	}
	s.CreateExecEnv(loggers.CoreDebugLogger)
	req, res := s.NewRequest()
	if res != nil {
		t.Fatalf("NewRequest() error = %v", res)
	}
	ok, results := req.Run(context.Background())
	if ok {
		t.Fatalf("expected failure")
	}
	if len(results) != 1 {
		t.Errorf("expected only the failed render result, got %d", len(results))
	}
}
