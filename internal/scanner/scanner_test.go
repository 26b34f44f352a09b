package scanner_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"campusHub/internal/lib/logger/handlers/slogdiscard"
	"campusHub/internal/scanner"
	"campusHub/internal/scanner/mocks"
	"campusHub/internal/ticket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validScan = `{"club_id":"c1","event_id":"e1","user_id":"u1","fullname":"Ada Lovelace","is_used":false}`

var errUnplugged = errors.New("device unplugged")

type fakeDevice struct {
	frames   chan string
	closes   atomic.Int32
	closedCh chan struct{}
	once     sync.Once
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		frames:   make(chan string),
		closedCh: make(chan struct{}),
	}
}

func (d *fakeDevice) ReadFrame(ctx context.Context) (string, error) {
	select {
	case f, ok := <-d.frames:
		if !ok {
			return "", errUnplugged
		}
		return f, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-d.closedCh:
		return "", os.ErrClosed
	}
}

func (d *fakeDevice) Close() error {
	d.closes.Add(1)
	d.once.Do(func() { close(d.closedCh) })
	return nil
}

func receive(t *testing.T, results <-chan ticket.ScanResult) ticket.ScanResult {
	t.Helper()

	select {
	case res, ok := <-results:
		require.True(t, ok, "results channel closed")
		return res
	case <-time.After(time.Second):
		t.Fatal("no scan result")
	}
	return ticket.ScanResult{}
}

func waitReleased(t *testing.T, sess *scanner.Session) {
	t.Helper()

	select {
	case <-sess.Done():
	case <-time.After(time.Second):
		t.Fatal("device was not released")
	}
}

func startedSession(t *testing.T) (*scanner.Session, *fakeDevice, <-chan ticket.ScanResult) {
	t.Helper()

	dev := newFakeDevice()
	opener := mocks.NewDeviceOpener(t)
	opener.On("Open", mock.Anything, scanner.FacingEnvironment).Return(dev, nil)

	sess := scanner.NewSession(slogdiscard.NewDiscardLogger(), opener)
	results, err := sess.Start(context.Background())
	require.NoError(t, err)

	return sess, dev, results
}

func TestSession_FallsBackToUserFacingDevice(t *testing.T) {
	t.Parallel()

	dev := newFakeDevice()
	opener := mocks.NewDeviceOpener(t)
	opener.On("Open", mock.Anything, scanner.FacingEnvironment).Return(nil, errors.New("permission denied")).Once()
	opener.On("Open", mock.Anything, scanner.FacingUser).Return(dev, nil).Once()

	sess := scanner.NewSession(slogdiscard.NewDiscardLogger(), opener)
	_, err := sess.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, scanner.StateScanning, sess.State())

	require.Len(t, opener.Calls, 2)
	assert.Equal(t, scanner.FacingEnvironment, opener.Calls[0].Arguments.Get(1))
	assert.Equal(t, scanner.FacingUser, opener.Calls[1].Arguments.Get(1))

	require.NoError(t, sess.Close())
}

func TestSession_CameraUnavailable(t *testing.T) {
	t.Parallel()

	dev := newFakeDevice()
	opener := mocks.NewDeviceOpener(t)
	opener.On("Open", mock.Anything, scanner.FacingEnvironment).Return(nil, errors.New("busy")).Once()
	opener.On("Open", mock.Anything, scanner.FacingUser).Return(nil, errors.New("missing")).Once()

	sess := scanner.NewSession(slogdiscard.NewDiscardLogger(), opener)

	results, err := sess.Start(context.Background())
	assert.ErrorIs(t, err, scanner.ErrCameraUnavailable)
	assert.Nil(t, results)
	assert.Equal(t, scanner.StateIdle, sess.State())

	// retry succeeds once a device shows up
	opener.On("Open", mock.Anything, scanner.FacingEnvironment).Return(dev, nil).Once()

	_, err = sess.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, sess.Close())
}

func TestSession_PausesAfterDecode(t *testing.T) {
	t.Parallel()

	sess, dev, results := startedSession(t)
	defer sess.Close()

	dev.frames <- validScan

	res := receive(t, results)
	assert.Equal(t, ticket.KindValid, res.Kind)
	assert.Equal(t, "u1", res.Payload.UserID)
	assert.Equal(t, scanner.StateDecoded, sess.State())

	select {
	case dev.frames <- validScan:
		t.Fatal("session kept reading before Resume")
	case <-time.After(50 * time.Millisecond):
	}

	sess.Resume()

	dev.frames <- "ABC123"

	res = receive(t, results)
	assert.Equal(t, ticket.KindUnparseable, res.Kind)
}

func TestSession_SkipsEmptyFrames(t *testing.T) {
	t.Parallel()

	sess, dev, results := startedSession(t)
	defer sess.Close()

	dev.frames <- ""
	dev.frames <- "not-json-at-all"

	res := receive(t, results)
	assert.Equal(t, ticket.KindUnparseable, res.Kind)
	assert.Equal(t, ticket.NotAvailable, res.Diagnostics()[ticket.FieldClubID])
}

type gatedOpener struct {
	dev     *fakeDevice
	entered chan struct{}
	gate    chan struct{}
	opens   atomic.Int32
}

func (o *gatedOpener) Open(ctx context.Context, _ scanner.Facing) (scanner.Device, error) {
	o.opens.Add(1)
	o.entered <- struct{}{}
	<-o.gate
	return o.dev, nil
}

func TestSession_ConcurrentStart(t *testing.T) {
	t.Parallel()

	opener := &gatedOpener{
		dev:     newFakeDevice(),
		entered: make(chan struct{}, 2),
		gate:    make(chan struct{}),
	}
	sess := scanner.NewSession(slogdiscard.NewDiscardLogger(), opener)

	firstErr := make(chan error, 1)
	go func() {
		_, err := sess.Start(context.Background())
		firstErr <- err
	}()

	select {
	case <-opener.entered:
	case <-time.After(time.Second):
		t.Fatal("first Start never opened a device")
	}

	_, err := sess.Start(context.Background())
	assert.ErrorIs(t, err, scanner.ErrAlreadyStarted)

	close(opener.gate)
	require.NoError(t, <-firstErr)
	assert.Equal(t, int32(1), opener.opens.Load())

	require.NoError(t, sess.Close())
	waitReleased(t, sess)
	assert.Equal(t, int32(1), opener.dev.closes.Load())
}

func TestSession_CloseReleasesOnce(t *testing.T) {
	t.Parallel()

	sess, dev, results := startedSession(t)

	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())
	waitReleased(t, sess)

	_, ok := <-results
	assert.False(t, ok)
	assert.Equal(t, int32(1), dev.closes.Load())
	assert.Equal(t, scanner.StateIdle, sess.State())

	_, err := sess.Start(context.Background())
	assert.ErrorIs(t, err, scanner.ErrClosed)
}

func TestSession_ContextCancelReleases(t *testing.T) {
	t.Parallel()

	dev := newFakeDevice()
	opener := mocks.NewDeviceOpener(t)
	opener.On("Open", mock.Anything, scanner.FacingEnvironment).Return(dev, nil)

	ctx, cancel := context.WithCancel(context.Background())

	sess := scanner.NewSession(slogdiscard.NewDiscardLogger(), opener)
	_, err := sess.Start(ctx)
	require.NoError(t, err)

	cancel()
	waitReleased(t, sess)

	require.NoError(t, sess.Close())
	assert.Equal(t, int32(1), dev.closes.Load())
	assert.NoError(t, sess.Err())
}

func TestSession_ReadFailureReleases(t *testing.T) {
	t.Parallel()

	sess, dev, results := startedSession(t)

	close(dev.frames)
	waitReleased(t, sess)

	_, ok := <-results
	assert.False(t, ok)
	assert.Equal(t, scanner.StateScanError, sess.State())
	assert.ErrorIs(t, sess.Err(), errUnplugged)
	assert.Equal(t, int32(1), dev.closes.Load())

	require.NoError(t, sess.Close())
	assert.Equal(t, int32(1), dev.closes.Load())
}

func TestSession_CloseBeforeStart(t *testing.T) {
	t.Parallel()

	sess := scanner.NewSession(slogdiscard.NewDiscardLogger(), mocks.NewDeviceOpener(t))

	require.NoError(t, sess.Close())

	_, err := sess.Start(context.Background())
	assert.ErrorIs(t, err, scanner.ErrClosed)
}

func TestLineDevice(t *testing.T) {
	t.Parallel()

	dev := scanner.NewLineDevice(io.NopCloser(strings.NewReader("first\n\n  second  \n")))

	var frames []string
	for {
		frame, err := dev.ReadFrame(context.Background())
		if err != nil {
			assert.ErrorIs(t, err, io.EOF)
			break
		}
		frames = append(frames, frame)
	}

	assert.Equal(t, []string{"first", "", "second"}, frames)
	assert.NoError(t, dev.Close())
}

func TestFileOpener(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hidraw")
	require.NoError(t, os.WriteFile(path, []byte(validScan+"\n"), 0o600))

	opener := scanner.FileOpener{Paths: map[scanner.Facing]string{scanner.FacingUser: path}}

	_, err := opener.Open(context.Background(), scanner.FacingEnvironment)
	assert.Error(t, err)

	dev, err := opener.Open(context.Background(), scanner.FacingUser)
	require.NoError(t, err)
	defer dev.Close()

	frame, err := dev.ReadFrame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, validScan, frame)
}
