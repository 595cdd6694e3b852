package stripchart

import "fmt"

// ConfigMismatchError reports a per-row option list whose length disagrees
// with the row count derived from the y-ranges.
type ConfigMismatchError struct {
	Option string
	Want   int
	Got    int
}

func (e *ConfigMismatchError) Error() string {
	return fmt.Sprintf("stripchart: %d y-ranges but %d %s", e.Want, e.Got, e.Option)
}

// RowIndexError reports a row-addressing operation outside the valid range.
type RowIndexError struct {
	Index int
	Rows  int
}

func (e *RowIndexError) Error() string {
	return fmt.Sprintf("stripchart: row index %d must be in [0,%d)", e.Index, e.Rows)
}

// ValueCountError reports a data source returning the wrong number of
// values for one frame. This is an integration error: truncating or padding
// would feed values to the wrong rows, so the engine refuses the frame.
type ValueCountError struct {
	Want int
	Got  int
}

func (e *ValueCountError) Error() string {
	return fmt.Sprintf("stripchart: data source returned %d values, expected %d", e.Got, e.Want)
}
