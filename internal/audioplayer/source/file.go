package source

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// FileSource streams a local audio file.
type FileSource struct {
	path  string
	title string

	mu   sync.Mutex
	file *os.File
}

func NewFileSource(path, title string) *FileSource {
	return &FileSource{path: path, title: title}
}

func (f *FileSource) Stream(w io.WriteCloser) error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.path, err)
	}
	f.mu.Lock()
	f.file = file
	f.mu.Unlock()

	go func() {
		_, _ = io.Copy(w, file)
		_ = w.Close()
	}()
	return nil
}

func (f *FileSource) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

func (f *FileSource) Title() string {
	return f.title
}
