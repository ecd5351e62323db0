package search

import (
	"encoding/json"
	"io"
	"strings"
)

// WritePlain writes one path per line. Pure function of results.
func WritePlain(w io.Writer, results []Result) error {
	var b strings.Builder
	for _, r := range results {
		b.WriteString(r.Path)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// jsonOutput is the envelope WriteJSON emits.
type jsonOutput struct {
	Results []Result `json:"results"`
}

// WriteJSON emits {"results":[{"path":...,"score":...}, ...]}. An empty or
// nil results slice still emits an empty array, never null.
func WriteJSON(w io.Writer, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(jsonOutput{Results: results})
}
