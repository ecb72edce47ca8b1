// Package audioplayer streams audio files into a Discord voice connection:
// source -> processor (PCM) -> opus encoder -> voice send channel.
package audioplayer

import (
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"layeh.com/gopus"

	"github.com/mhtoin/initbot/internal/audioplayer/processor"
	"github.com/mhtoin/initbot/internal/audioplayer/source"
)

const (
	sampleRate = 48000
	channels   = 2
	// frameSize is 20ms of audio at 48kHz.
	frameSize      = 960
	maxPacketBytes = 1000 * 2
	bitrate        = 64000
)

// Encoder turns one PCM frame into an opus packet. *gopus.Encoder
// satisfies it.
type Encoder interface {
	Encode(pcm []int16, frameSize, maxDataBytes int) ([]byte, error)
}

// Speaker toggles the speaking indicator. *discordgo.VoiceConnection
// satisfies it.
type Speaker interface {
	Speaking(b bool) error
}

// NewOpusEncoder returns the encoder Discord voice expects.
func NewOpusEncoder() (Encoder, error) {
	e, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		return nil, err
	}
	e.SetBitrate(bitrate)
	return e, nil
}

// Option configures a Streamer.
type Option func(*Streamer)

// WithEncoder replaces the opus encoder factory.
func WithEncoder(newEncoder func() (Encoder, error)) Option {
	return func(s *Streamer) { s.newEncoder = newEncoder }
}

// WithFrameInterval sets the pacing between packets, 20ms by default.
func WithFrameInterval(d time.Duration) Option {
	return func(s *Streamer) { s.frameInterval = d }
}

// Streamer plays one stream. Create a new Streamer per sound.
type Streamer struct {
	speaker       Speaker
	send          chan<- []byte
	logger        *zap.Logger
	newEncoder    func() (Encoder, error)
	frameInterval time.Duration

	mu        sync.Mutex
	started   bool
	source    source.Source
	processor processor.Processor
	pipes     []*io.PipeReader

	stopChan   chan struct{}
	stopOnce   sync.Once
	done       chan struct{}
	doneOnce   sync.Once
	buffer     chan []byte
	wg         sync.WaitGroup
	resumeChan chan struct{}
	isPaused   bool
	pauseMutex sync.Mutex
}

func NewStreamer(speaker Speaker, send chan<- []byte, logger *zap.Logger, opts ...Option) *Streamer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Streamer{
		speaker:       speaker,
		send:          send,
		logger:        logger,
		newEncoder:    NewOpusEncoder,
		frameInterval: 20 * time.Millisecond,
		stopChan:      make(chan struct{}),
		done:          make(chan struct{}),
		buffer:        make(chan []byte, 30),
		resumeChan:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Play starts streaming src through proc and returns once playback runs.
func (s *Streamer) Play(src source.Source, proc processor.Processor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("streamer already played")
	}
	select {
	case <-s.stopChan:
		return errors.New("streamer stopped")
	default:
	}

	sourceToProcessorReader, sourceToProcessorWriter := io.Pipe()
	if err := src.Stream(sourceToProcessorWriter); err != nil {
		return err
	}

	processorToEncoderReader, processorToEncoderWriter := io.Pipe()
	if err := proc.Process(sourceToProcessorReader, processorToEncoderWriter); err != nil {
		_ = src.Stop()
		_ = sourceToProcessorReader.Close()
		return err
	}

	encoder, err := s.newEncoder()
	if err != nil {
		_ = src.Stop()
		_ = proc.Stop()
		_ = sourceToProcessorReader.Close()
		_ = processorToEncoderReader.Close()
		return err
	}

	s.started = true
	s.source = src
	s.processor = proc
	s.pipes = []*io.PipeReader{sourceToProcessorReader, processorToEncoderReader}

	s.speak(true)

	s.wg.Add(2)
	go s.encodeAndBuffer(processorToEncoderReader, encoder)
	go s.streamToDiscord()
	go func() {
		s.wg.Wait()
		s.finish()
	}()
	return nil
}

func (s *Streamer) encodeAndBuffer(r io.Reader, e Encoder) {
	defer s.wg.Done()
	defer close(s.buffer)

	pcmBuffer := make([]int16, frameSize*channels)
	byteBuffer := make([]byte, len(pcmBuffer)*2)

	for {
		if _, err := io.ReadFull(r, byteBuffer); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) && !s.stopped() {
				s.logger.Warn("reading pcm data", zap.Error(err))
			}
			return
		}

		for i := range pcmBuffer {
			pcmBuffer[i] = int16(byteBuffer[i*2]) | int16(byteBuffer[i*2+1])<<8
		}

		packet, err := e.Encode(pcmBuffer, frameSize, maxPacketBytes)
		if err != nil {
			s.logger.Warn("encoding opus frame", zap.Error(err))
			continue
		}

		select {
		case s.buffer <- packet:
		case <-s.stopChan:
			return
		}
	}
}

func (s *Streamer) streamToDiscord() {
	defer s.wg.Done()
	defer s.speak(false)

	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	for {
		if !s.waitWhilePaused() {
			return
		}

		select {
		case <-s.stopChan:
			return
		case packet, ok := <-s.buffer:
			if !ok {
				s.logger.Debug("audio stream complete", zap.String("title", s.Title()))
				return
			}

			select {
			case <-ticker.C:
			case <-s.stopChan:
				return
			}

			select {
			case s.send <- packet:
			case <-s.stopChan:
				return
			default:
				s.logger.Debug("voice send buffer full, skipping packet")
			}
		}
	}
}

// waitWhilePaused blocks while paused and reports false when stopped.
func (s *Streamer) waitWhilePaused() bool {
	if !s.IsPaused() {
		return true
	}
	s.speak(false)
	for s.IsPaused() {
		select {
		case <-s.stopChan:
			return false
		case <-s.resumeChan:
		case <-time.After(100 * time.Millisecond):
		}
	}
	s.speak(true)
	return true
}

func (s *Streamer) speak(on bool) {
	if s.speaker == nil {
		return
	}
	if err := s.speaker.Speaking(on); err != nil {
		s.logger.Debug("setting speaking status", zap.Bool("speaking", on), zap.Error(err))
	}
}

func (s *Streamer) Pause() {
	s.pauseMutex.Lock()
	defer s.pauseMutex.Unlock()
	s.isPaused = true
}

func (s *Streamer) Resume() {
	s.pauseMutex.Lock()
	defer s.pauseMutex.Unlock()

	if s.isPaused {
		s.isPaused = false
		select {
		case s.resumeChan <- struct{}{}:
		default:
		}
	}
}

func (s *Streamer) IsPaused() bool {
	s.pauseMutex.Lock()
	defer s.pauseMutex.Unlock()
	return s.isPaused
}

// Title names what is playing.
func (s *Streamer) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return ""
	}
	return s.source.Title()
}

// Done is closed when playback has ended, naturally or through Stop.
func (s *Streamer) Done() <-chan struct{} {
	return s.done
}

// Stop ends playback and waits for the streaming goroutines. It is safe
// to call more than once.
func (s *Streamer) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.source != nil {
			_ = s.source.Stop()
		}
		if s.processor != nil {
			_ = s.processor.Stop()
		}
		for _, p := range s.pipes {
			_ = p.Close()
		}
		s.mu.Unlock()
	})
	s.wg.Wait()
	s.finish()
}

func (s *Streamer) stopped() bool {
	select {
	case <-s.stopChan:
		return true
	default:
		return false
	}
}

func (s *Streamer) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}
