package datasource

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// JSONLoader passes JSON through after checking it is well formed. An empty
// file loads as an empty object.
type JSONLoader struct{}

func (l *JSONLoader) Load(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []byte("{}"), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse json: invalid document")
	}
	return data, nil
}
