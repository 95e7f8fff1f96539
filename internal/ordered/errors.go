package ordered

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned for any index outside the range an operation accepts.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError describes a rejected index.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

func checkIndex(op string, index, n int) error {
	if index < 0 || index >= n {
		return &IndexError{Op: op, Index: index, Len: n}
	}
	return nil
}
