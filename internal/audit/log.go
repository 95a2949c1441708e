// Package audit appends one JSONL record per scan so runs over the same
// image set can be compared over time. Finding values are never written to
// the audit log, only counts.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

type ScanRecord struct {
	Timestamp      time.Time      `json:"timestamp"`
	ScanID         string         `json:"scan_id"`
	Root           string         `json:"root"`
	Sources        int            `json:"sources"`
	FailedSources  int            `json:"failed_sources"`
	TotalFindings  int            `json:"total_findings"`
	CategoryCounts map[string]int `json:"category_counts"`
	Duration       string         `json:"duration"`
}

type AuditLog struct {
	logPath string
}

func NewAuditLog(root string) *AuditLog {
	return &AuditLog{logPath: filepath.Join(root, ".sensiscan_audit.jsonl")}
}

// LogScan appends a record. Owner-only permissions: the log reveals which
// images contained sensitive information.
func (a *AuditLog) LogScan(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = fmt.Sprintf("scan_%d", time.Now().Unix())
	}
	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// LoadHistory returns past records, newest first. Malformed lines are
// skipped.
func (a *AuditLog) LoadHistory() ([]ScanRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var record ScanRecord
		if err := dec.Decode(&record); err != nil {
			continue
		}
		records = append(records, record)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// CreateScanRecord summarizes a finished batch for the audit trail.
func CreateScanRecord(root string, batch types.BatchReport, duration time.Duration) ScanRecord {
	counts := make(map[string]int)
	for _, r := range batch.Reports {
		for _, f := range r.Findings {
			counts[string(f.Category)]++
		}
	}
	return ScanRecord{
		Timestamp:      time.Now(),
		Root:           root,
		Sources:        len(batch.Reports),
		FailedSources:  batch.FailedSources(),
		TotalFindings:  batch.TotalFindings(),
		CategoryCounts: counts,
		Duration:       duration.String(),
	}
}
