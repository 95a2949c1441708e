package core

import (
	"encoding/json"
	"io"
)

// MarshalReport pretty-prints a batch report as JSON for humans or
// pipelines.
func MarshalReport(w io.Writer, b BatchReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// UnmarshalReport decodes batch report JSON, useful for ingestion tests.
func UnmarshalReport(r io.Reader) (BatchReport, error) {
	var b BatchReport
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return BatchReport{}, err
	}
	return b, nil
}
