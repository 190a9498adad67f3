package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"rama_assistant/pkg/core/numbers"
)

// CSV writes the inputs, derived metrics and anomalies as one flat
// spreadsheet download. Absent values are left as empty cells so the
// sheet round-trips without a magic sentinel.
func (r Report) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	write := func(record ...string) {
		// csv.Writer buffers; the single error check happens on Flush.
		_ = w.Write(record)
	}

	write("section", "key", "value")

	var keys []string
	for _, f := range numbers.AllFields {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)
	for _, k := range keys {
		f, _ := numbers.ParseField(k)
		v := ""
		if val := r.Result.Inputs.Get(f); val != nil {
			v = fmt.Sprintf("%g", *val)
		}
		write("input", k, v)
	}

	for _, m := range numbers.AllMetrics {
		v := ""
		if val := r.Result.Metrics.Get(m); val != nil {
			v = fmt.Sprintf("%g", *val)
		}
		write("metric", string(m), v)
	}

	for _, a := range r.Result.Anomalies {
		write("anomaly", a.Field, string(a.Code))
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv write failed: %w", err)
	}
	return buf.Bytes(), nil
}
