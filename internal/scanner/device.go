package scanner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

type line struct {
	text string
	err  error
}

// LineDevice reads newline-terminated codes, which is how handheld
// scanners in keyboard mode deliver them.
type LineDevice struct {
	rc    io.ReadCloser
	lines chan line
	done  chan struct{}
	start sync.Once
	stop  sync.Once
}

func NewLineDevice(rc io.ReadCloser) *LineDevice {
	return &LineDevice{
		rc:    rc,
		lines: make(chan line),
		done:  make(chan struct{}),
	}
}

func (d *LineDevice) pump() {
	defer close(d.lines)

	sc := bufio.NewScanner(d.rc)
	for sc.Scan() {
		if !d.send(line{text: strings.TrimSpace(sc.Text())}) {
			return
		}
	}

	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	d.send(line{err: err})
}

func (d *LineDevice) send(l line) bool {
	select {
	case d.lines <- l:
		return true
	case <-d.done:
		return false
	}
}

func (d *LineDevice) ReadFrame(ctx context.Context) (string, error) {
	d.start.Do(func() { go d.pump() })

	select {
	case l, ok := <-d.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (d *LineDevice) Close() error {
	d.stop.Do(func() { close(d.done) })
	return d.rc.Close()
}

// FileOpener opens a device node per facing.
type FileOpener struct {
	Paths map[Facing]string
}

func (o FileOpener) Open(_ context.Context, facing Facing) (Device, error) {
	path := o.Paths[facing]
	if path == "" {
		return nil, fmt.Errorf("no %s device configured", facing)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return NewLineDevice(f), nil
}
