// Package ticket turns a registration identity into a scannable QR ticket
// and reads scanned ticket text back.
package ticket

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	// ImageSize is the edge length of the rendered PNG in pixels.
	ImageSize = 256

	dataURLPrefix = "data:image/png;base64,"
)

var ErrInvalidIdentity = errors.New("ticket identity is incomplete")

// Identity is what the caller knows about a registration. The used flag is
// not part of it: every ticket is issued unused.
type Identity struct {
	ClubID   string
	EventID  string
	UserID   string
	FullName string
}

// Payload is the JSON document carried inside the QR image.
type Payload struct {
	ClubID   string `json:"club_id"`
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	FullName string `json:"fullname"`
	IsUsed   bool   `json:"is_used"`
}

type Ticket struct {
	Payload Payload
	JSON    []byte
	PNG     []byte
}

// DataURL returns the PNG as an embeddable image string.
func (t *Ticket) DataURL() string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(t.PNG)
}

// PNGFromDataURL reverses DataURL for stored tickets.
func PNGFromDataURL(s string) ([]byte, error) {
	if len(s) < len(dataURLPrefix) || s[:len(dataURLPrefix)] != dataURLPrefix {
		return nil, fmt.Errorf("ticket image is not a png data url")
	}

	return base64.StdEncoding.DecodeString(s[len(dataURLPrefix):])
}

// EncodeFunc matches qrcode.Encode so tests can swap the renderer.
type EncodeFunc func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

type Encoder struct {
	encode EncodeFunc
	size   int
}

func NewEncoder() *Encoder {
	return &Encoder{
		encode: qrcode.Encode,
		size:   ImageSize,
	}
}

func NewEncoderWith(fn EncodeFunc, size int) *Encoder {
	return &Encoder{
		encode: fn,
		size:   size,
	}
}

func (e *Encoder) Encode(id Identity) (*Ticket, error) {
	const op = "ticket.Encode"

	if id.ClubID == "" || id.EventID == "" || id.UserID == "" || id.FullName == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidIdentity)
	}

	payload := Payload{
		ClubID:   id.ClubID,
		EventID:  id.EventID,
		UserID:   id.UserID,
		FullName: id.FullName,
		IsUsed:   false,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal payload: %w", op, err)
	}

	png, err := e.encode(string(raw), qrcode.Medium, e.size)
	if err != nil {
		return nil, fmt.Errorf("%s: render qr code: %w", op, err)
	}

	return &Ticket{
		Payload: payload,
		JSON:    raw,
		PNG:     png,
	}, nil
}

var defaultEncoder = NewEncoder()

func Encode(id Identity) (*Ticket, error) {
	return defaultEncoder.Encode(id)
}
