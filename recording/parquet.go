package recording

import (
	"bytes"
	"io"
	"strconv"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/neuroviz/eegview/logging"
)

// Decode parses a Parquet buffer into a ColumnarTable. The buffer's exact
// on-wire layout is the parquet library's business; only column names, row
// count and key/value metadata survive into the table. Any malformed or
// truncated input yields a *DecodeError.
func Decode(buf []byte) (*ColumnarTable, error) {
	if len(buf) == 0 {
		return nil, decodeErrorf(nil, "empty buffer")
	}

	f, err := parquet.OpenFile(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, decodeErrorf(err, "not a well-formed parquet file")
	}

	fields := f.Schema().Fields()
	numRows := int(f.NumRows())

	values := make([][]float64, len(fields))
	for i := range values {
		values[i] = make([]float64, 0, numRows)
	}

	for _, rg := range f.RowGroups() {
		chunks := rg.ColumnChunks()
		if len(chunks) != len(fields) {
			return nil, decodeErrorf(nil, "schema/column mismatch: %d columns for %d schema fields", len(chunks), len(fields))
		}
		for i, chunk := range chunks {
			if err := readColumnChunk(chunk, &values[i]); err != nil {
				return nil, decodeErrorf(err, "read column %q", fields[i].Name())
			}
		}
	}

	columns := make([]Column, len(fields))
	for i, field := range fields {
		if len(values[i]) != numRows {
			return nil, decodeErrorf(nil, "column %q has %d cells, declared row count is %d", field.Name(), len(values[i]), numRows)
		}
		columns[i] = Column{Name: field.Name(), Values: values[i]}
	}

	metadata := make(map[string]string)
	for _, kv := range f.Metadata().KeyValueMetadata {
		metadata[kv.Key] = kv.Value
	}

	table, err := NewColumnarTable(columns, metadata)
	if err != nil {
		return nil, decodeErrorf(err, "assemble table")
	}

	logging.Debug("decoded columnar buffer", logging.Fields{
		"columns": len(columns),
		"rows":    numRows,
		"bytes":   len(buf),
	})

	return table, nil
}

func readColumnChunk(chunk parquet.ColumnChunk, dst *[]float64) error {
	pages := chunk.Pages()
	defer pages.Close()

	buf := make([]parquet.Value, 1024)
	for {
		page, err := pages.ReadPage()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		reader := page.Values()
		for {
			n, err := reader.ReadValues(buf)
			for _, v := range buf[:n] {
				*dst = append(*dst, coerceNumericOrZero(v))
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
		}
	}
}

// coerceNumericOrZero is the deliberate leniency policy applied uniformly at
// the decoder boundary: numeric cells convert to float64, string cells are
// parsed as decimals, and anything else (nulls, unparseable text) becomes 0.
// Bad cell data never fails a decode.
func coerceNumericOrZero(v parquet.Value) float64 {
	if v.IsNull() {
		return 0
	}
	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return 1
		}
		return 0
	case parquet.Int32:
		return float64(v.Int32())
	case parquet.Int64:
		return float64(v.Int64())
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		if f, err := strconv.ParseFloat(string(v.ByteArray()), 64); err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}
