package render

import (
	"encoding/json"

	"coldb/internal/engine"
)

type jsonFormatter struct{}

type resultPayload struct {
	Header   []string   `json:"header"`
	Rows     [][]string `json:"rows"`
	RowCount int        `json:"rowCount"`
}

func (jsonFormatter) FormatResult(r engine.Result) (string, error) {
	payload := resultPayload{
		Header:   r.Header,
		Rows:     r.Rows,
		RowCount: len(r.Rows),
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
