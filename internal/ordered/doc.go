// Package ordered holds the list of rows behind the editor screen.
//
// A Store keeps items in display order and changes them only through
// index-based operations: insert, remove and move. Any index outside the valid
// range returns an error wrapping ErrIndexOutOfRange, and the list stays as it
// was. Store is not safe for concurrent use. Callers serialise access
// themselves, usually by touching it from a single goroutine.
package ordered
