package kiosk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"campusHub/internal/checkin"
	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/scanner"
	"campusHub/internal/ticket"

	"github.com/fatih/color"
)

type Scanner interface {
	Start(ctx context.Context) (<-chan ticket.ScanResult, error)
	Resume()
	Close() error
	Err() error
}

type Redeemer interface {
	Redeem(ctx context.Context, raw string) (*Verdict, error)
}

// Kiosk drives one scanner session and prints a verdict per scan.
type Kiosk struct {
	log        *slog.Logger
	scanner    Scanner
	redeemer   Redeemer
	out        io.Writer
	retryEvery time.Duration
}

func New(log *slog.Logger, s Scanner, r Redeemer, out io.Writer, retryEvery time.Duration) *Kiosk {
	return &Kiosk{
		log:        log.With(slog.String("component", "kiosk")),
		scanner:    s,
		redeemer:   r,
		out:        out,
		retryEvery: retryEvery,
	}
}

// Run scans until ctx is done or the device goes away. A missing device is
// retried every retryEvery.
func (k *Kiosk) Run(ctx context.Context) error {
	defer k.scanner.Close()

	results, err := k.start(ctx)
	if err != nil {
		return err
	}

	for res := range results {
		k.handle(ctx, res)
		k.scanner.Resume()
	}

	if err := k.scanner.Err(); err != nil {
		return fmt.Errorf("kiosk.Run: %w", err)
	}

	return nil
}

func (k *Kiosk) start(ctx context.Context) (<-chan ticket.ScanResult, error) {
	for {
		results, err := k.scanner.Start(ctx)
		if err == nil {
			return results, nil
		}
		if !errors.Is(err, scanner.ErrCameraUnavailable) {
			return nil, fmt.Errorf("kiosk.Run: %w", err)
		}

		k.log.Warn("no scanner available, retrying", sl.Err(err), slog.Duration("every", k.retryEvery))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(k.retryEvery):
		}
	}
}

func (k *Kiosk) handle(ctx context.Context, res ticket.ScanResult) {
	name := res.Diagnostics()[ticket.FieldFullName]

	v, err := k.redeemer.Redeem(ctx, res.Raw)
	if err != nil {
		k.log.Error("check-in request failed", sl.Err(err))
		color.New(color.FgRed, color.Bold).Fprintf(k.out, "ERROR     %s\n", err)
		return
	}

	switch v.Outcome {
	case checkin.OutcomeCheckedIn:
		color.New(color.FgGreen, color.Bold).Fprintf(k.out, "WELCOME   %s\n", name)
	case checkin.OutcomeAlreadyUsed:
		color.New(color.FgYellow, color.Bold).Fprintf(k.out, "USED      %s already checked in\n", name)
	default:
		color.New(color.FgRed).Fprintf(k.out, "DENIED    %s (%s)\n", name, v.Outcome)
	}
}
