package source

import "io"

// Source produces an encoded audio stream. Stream returns once the copy is
// running; the writer is closed when the stream ends.
type Source interface {
	Stream(w io.WriteCloser) error
	Stop() error
	Title() string
}
