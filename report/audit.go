package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/soderasen-au/go-common/util"
)

// AuditRecord is one line of the audit file, written after a report is
// saved.
type AuditRecord struct {
	Timestamp  string `csv:"Timestamp"`
	Script     string `csv:"Script"`
	Step       string `csv:"Step"`
	ReportID   string `csv:"ReportId"`
	Format     string `csv:"Format"`
	FileName   string `csv:"FileName"`
	FileSize   int64  `csv:"FileSize"`
	Tables     int    `csv:"Tables"`
	TotalRows  int    `csv:"TotalRows"`
	Placements int    `csv:"Placements"`
}

func NewAuditRecord(script, step string, rr *ReportResult) AuditRecord {
	rec := AuditRecord{
		Timestamp:  time.Now().Format(time.RFC3339),
		Script:     script,
		Step:       step,
		ReportID:   rr.ID,
		FileName:   util.MaybeNil(rr.ReportFile),
		Tables:     rr.Tables,
		TotalRows:  rr.PrintedRows,
		Placements: rr.Placements,
	}
	if fi, err := os.Stat(rec.FileName); err == nil {
		rec.FileSize = fi.Size()
	}
	rec.Format = strings.TrimPrefix(filepath.Ext(rec.FileName), ".")
	return rec
}

// AuditLog appends records to a csv file. Record may be called from several
// goroutines.
type AuditLog struct {
	fileName string
	fd       *os.File
	mu       sync.Mutex
}

func (audit *AuditLog) Close() {
	audit.mu.Lock()
	defer audit.mu.Unlock()
	if audit.fd != nil {
		audit.fd.Close()
		audit.fd = nil
	}
}

func (audit *AuditLog) Record(r AuditRecord) *util.Result {
	audit.mu.Lock()
	defer audit.mu.Unlock()

	if audit.fd == nil {
		return util.MsgError("WriteRecord", fmt.Sprintf("audit log %s is closed", audit.fileName))
	}
	if err := gocsv.MarshalWithoutHeaders([]AuditRecord{r}, audit.fd); err != nil {
		return util.Error("WriteRecord", err)
	}
	return nil
}

// OpenFile opens fn for appending; the header row is written only when the
// file is empty.
func (audit *AuditLog) OpenFile(fn string) *util.Result {
	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return util.Error("OpenFile", err)
	}

	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return util.Error("Seek", err)
	}
	if end == 0 {
		if err := gocsv.Marshal([]AuditRecord{}, f); err != nil {
			f.Close()
			return util.Error("WriteHeader", err)
		}
	}

	audit.fileName = fn
	audit.fd = f
	return nil
}

func NewAuditLog(fn string) (*AuditLog, *util.Result) {
	auditLog := &AuditLog{}
	res := auditLog.OpenFile(fn)
	if res != nil {
		return nil, res.With("OpenFile")
	}

	return auditLog, nil
}
