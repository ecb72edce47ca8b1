package processor

import "io"

// Processor decodes the stream read from r into raw PCM written to w and
// closes w when done.
type Processor interface {
	Process(r io.Reader, w io.WriteCloser) error
	Stop() error
}
