package processor

import (
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
)

// FfmpegProcessor decodes any input ffmpeg understands into 48kHz stereo
// s16le PCM, the format the opus encoder expects.
type FfmpegProcessor struct {
	// Binary is the ffmpeg executable, looked up in PATH by default.
	Binary string
	// Volume scales the output, 1 being unchanged.
	Volume float64

	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewFfmpegProcessor() *FfmpegProcessor {
	return &FfmpegProcessor{Binary: "ffmpeg", Volume: 0.5}
}

func (p *FfmpegProcessor) args() []string {
	return []string{
		"-i", "pipe:0",
		"-f", "s16le",
		"-ar", "48000",
		"-ac", "2",
		"-af", "volume=" + strconv.FormatFloat(p.Volume, 'f', -1, 64),
		"-threads", "2",
		"-loglevel", "warning",
		"pipe:1",
	}
}

func (p *FfmpegProcessor) Process(r io.Reader, w io.WriteCloser) error {
	cmd := exec.Command(p.Binary, p.args()...)
	cmd.Stdin = r
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting ffmpeg: %w", err)
	}
	p.mu.Lock()
	p.cmd = cmd
	p.mu.Unlock()

	go func() {
		_, _ = io.Copy(w, stdout)
		_ = cmd.Wait()
		_ = w.Close()
	}()
	return nil
}

func (p *FfmpegProcessor) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd != nil && p.cmd.Process != nil {
		return p.cmd.Process.Kill()
	}
	return nil
}
