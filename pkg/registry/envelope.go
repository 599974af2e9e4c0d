package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Row is one record's columns in wire order. Columns are positionally
// typed: the caller knows the layout per endpoint, the wire carries no
// column metadata.
type Row []string

// TabularResult is a decoded result envelope. Zero rows is a valid result,
// distinct from any failure.
type TabularResult struct {
	Rows []Row
}

func (t *TabularResult) Empty() bool {
	return len(t.Rows) == 0
}

// The registry answers every list endpoint with
//
//	{ "outputParameters": { "Result": [ [ [col0, col1, ...], ... ] ] } }
//
// where Result holds groups of records and each record is an ordered column
// array. DecodeEnvelope flattens the groups into rows and coerces each
// column to its string form.
func DecodeEnvelope(r io.Reader) (*TabularResult, error) {
	var env struct {
		OutputParameters *struct {
			Result *[][][]interface{} `json:"Result"`
		} `json:"outputParameters"`
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	if env.OutputParameters == nil {
		return nil, fmt.Errorf("envelope has no outputParameters node")
	}
	if env.OutputParameters.Result == nil {
		return nil, fmt.Errorf("envelope has no Result node")
	}

	result := &TabularResult{}
	for _, group := range *env.OutputParameters.Result {
		for _, record := range group {
			row := make(Row, 0, len(record))
			for _, column := range record {
				row = append(row, coerceColumn(column))
			}
			result.Rows = append(result.Rows, row)
		}
	}
	return result, nil
}

func coerceColumn(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
