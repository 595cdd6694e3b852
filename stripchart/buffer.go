// Package stripchart implements the data model and per-frame update engine
// for fixed-width scrolling time-series plots. It owns the rolling sample
// windows, the row/overlay/phase-panel structure and the values-pull
// protocol; painting is left to a renderer consuming the Frame returned by
// each update.
package stripchart

// Buffer is a fixed-width rolling window of samples. Its length is set at
// construction and never changes: the window starts out filled with zeros,
// and every Append drops the oldest sample to make room for the newest.
type Buffer struct {
	vals []float64
}

// NewBuffer returns a Buffer holding size samples, pre-filled with zeros.
func NewBuffer(size int) *Buffer {
	if size < 1 {
		size = 1
	}
	return &Buffer{vals: make([]float64, size)}
}

// Append shifts the window left by one and stores v in the newest slot.
// Non-finite values are stored as-is.
func (b *Buffer) Append(v float64) {
	copy(b.vals, b.vals[1:])
	b.vals[len(b.vals)-1] = v
}

// Values returns the window contents, oldest first. The slice is owned by
// the buffer and is only valid until the next Append; callers must not
// mutate it.
func (b *Buffer) Values() []float64 {
	return b.vals
}

// Size returns the fixed window width.
func (b *Buffer) Size() int {
	return len(b.vals)
}

// Last returns the newest sample.
func (b *Buffer) Last() float64 {
	return b.vals[len(b.vals)-1]
}
