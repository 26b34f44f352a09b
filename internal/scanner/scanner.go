// Package scanner drives a QR capture device through one scanning session:
// acquire a device, read until a code decodes, pause, and release the
// device on every exit path.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/ticket"
)

var (
	ErrCameraUnavailable = errors.New("no capture device could be opened")
	ErrAlreadyStarted    = errors.New("scanner session already started")
	ErrClosed            = errors.New("scanner session closed")
)

type Facing int

const (
	FacingEnvironment Facing = iota
	FacingUser
)

func (f Facing) String() string {
	if f == FacingUser {
		return "user"
	}
	return "environment"
}

type State int

const (
	StateIdle State = iota
	StateScanning
	StateDecoded
	StateScanError
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateDecoded:
		return "decoded"
	case StateScanError:
		return "scan_error"
	}
	return "idle"
}

// Device yields the text of captured codes. ReadFrame blocks until a frame
// is available; an empty frame means nothing decodable was seen.
//
//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Device
type Device interface {
	ReadFrame(ctx context.Context) (string, error)
	Close() error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DeviceOpener
type DeviceOpener interface {
	Open(ctx context.Context, facing Facing) (Device, error)
}

type Session struct {
	log    *slog.Logger
	opener DeviceOpener

	mu      sync.Mutex
	state   State
	err     error
	dev     Device
	cancel  context.CancelFunc
	resume  chan struct{}
	results chan ticket.ScanResult
	closed  bool
	opening bool

	release sync.Once
	done    chan struct{}
}

func NewSession(log *slog.Logger, opener DeviceOpener) *Session {
	return &Session{
		log:    log,
		opener: opener,
		state:  StateIdle,
		resume: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err is the read failure that moved the session to StateScanError.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Start acquires a device, environment-facing first, and begins reading.
// Each decoded scan is delivered on the returned channel, after which the
// session stays in StateDecoded until Resume. The channel is closed once
// the device has been released.
//
// When no device can be opened Start returns ErrCameraUnavailable and the
// session stays idle, so Start may be called again. A session that has
// released its device cannot be restarted.
func (s *Session) Start(ctx context.Context) (<-chan ticket.ScanResult, error) {
	const op = "scanner.Session.Start"

	log := s.log.With(slog.String("op", op))

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.state != StateIdle || s.opening {
		s.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	s.opening = true
	s.mu.Unlock()

	dev, err := s.acquire(ctx, log)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.opening = false
	if err != nil {
		return nil, err
	}

	if s.closed {
		_ = dev.Close()
		return nil, ErrClosed
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.dev = dev
	s.cancel = cancel
	s.state = StateScanning
	s.results = make(chan ticket.ScanResult)

	go s.run(runCtx, dev, s.results)

	return s.results, nil
}

func (s *Session) acquire(ctx context.Context, log *slog.Logger) (Device, error) {
	var errs []error

	for _, facing := range []Facing{FacingEnvironment, FacingUser} {
		dev, err := s.opener.Open(ctx, facing)
		if err == nil {
			log.Info("capture device acquired", slog.String("facing", facing.String()))
			return dev, nil
		}

		log.Warn("failed to open capture device", slog.String("facing", facing.String()), sl.Err(err))
		errs = append(errs, fmt.Errorf("%s: %w", facing, err))
	}

	return nil, fmt.Errorf("%w: %w", ErrCameraUnavailable, errors.Join(errs...))
}

func (s *Session) run(ctx context.Context, dev Device, results chan<- ticket.ScanResult) {
	defer close(results)
	defer s.releaseDevice()

	for {
		frame, err := dev.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.log.Error("scanner read failed", sl.Err(err))
				s.setError(err)
			}
			return
		}
		if frame == "" {
			continue
		}

		res := ticket.Decode(frame)
		s.setState(StateDecoded)

		select {
		case results <- res:
		case <-ctx.Done():
			return
		}

		select {
		case <-s.resume:
			s.setState(StateScanning)
		case <-ctx.Done():
			return
		}
	}
}

// Resume continues reading after a decoded scan. It is a no-op in any
// other state.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateDecoded {
		return
	}

	select {
	case s.resume <- struct{}{}:
	default:
	}
}

// Close stops reading and releases the device. It is safe to call more
// than once and from any goroutine.
func (s *Session) Close() error {
	s.mu.Lock()
	s.closed = true
	cancel := s.cancel
	started := s.dev != nil
	s.mu.Unlock()

	if !started {
		return nil
	}

	cancel()
	return s.releaseDevice()
}

// Done is closed once the device has been released.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) releaseDevice() error {
	var err error

	s.release.Do(func() {
		s.mu.Lock()
		dev := s.dev
		s.closed = true
		if s.state != StateScanError {
			s.state = StateIdle
		}
		s.mu.Unlock()

		err = dev.Close()
		if err != nil {
			s.log.Warn("failed to release capture device", sl.Err(err))
		}
		close(s.done)
	})

	return err
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *Session) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateScanError
	s.err = err
}
