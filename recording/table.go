package recording

import "fmt"

// Column is one named column of numeric cells. Cells arrive already coerced
// by the decoder's leniency policy (see coerceNumericOrZero), so a Column is
// always one float64 per row.
type Column struct {
	Name   string
	Values []float64
}

// ColumnarTable is an ordered set of named, equal-length columns plus
// free-form key/value schema metadata. It is the external input to the
// channel-tensor builder and is consumed only through name lookup, row count
// and metadata lookup.
type ColumnarTable struct {
	columns  []Column
	index    map[string]int
	numRows  int
	metadata map[string]string
}

// NewColumnarTable assembles a table from columns and metadata. All columns
// must have the same number of cells.
func NewColumnarTable(columns []Column, metadata map[string]string) (*ColumnarTable, error) {
	t := &ColumnarTable{
		columns:  columns,
		index:    make(map[string]int, len(columns)),
		metadata: metadata,
	}
	if t.metadata == nil {
		t.metadata = make(map[string]string)
	}
	for i, col := range columns {
		if i == 0 {
			t.numRows = len(col.Values)
		} else if len(col.Values) != t.numRows {
			return nil, fmt.Errorf("column %q has %d cells, want %d", col.Name, len(col.Values), t.numRows)
		}
		t.index[col.Name] = i
	}
	return t, nil
}

// NumRows returns the frame count shared by every column.
func (t *ColumnarTable) NumRows() int {
	return t.numRows
}

// Columns returns the columns in their original order.
func (t *ColumnarTable) Columns() []Column {
	return t.columns
}

// Column looks up a column by exact name.
func (t *ColumnarTable) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.columns[i], true
}

// Lookup returns a schema metadata value by key.
func (t *ColumnarTable) Lookup(key string) (string, bool) {
	v, ok := t.metadata[key]
	return v, ok
}
