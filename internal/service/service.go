// Package service contains the business logic for the PackVision API.
// Services validate inputs, enforce business rules, and orchestrate the
// store, the AI client and the weather normalizer.
// No HTTP or storage details live here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/sanitize"
)

// TextGenerator is the text-completion half of ai.Client.
type TextGenerator interface {
	Text(ctx context.Context, prompt string) (string, error)
}

// VisionGenerator is the image-completion half of ai.Client.
type VisionGenerator interface {
	Vision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// WeatherFetcher is satisfied by weather.Service.
type WeatherFetcher interface {
	ForDestination(ctx context.Context, destination string) (domain.WeatherData, error)
}

// Clock returns the current time. A nil Clock means time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// invalid builds a validation error whose text after the prefix is the
// message shown to the user.
func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "")
}

// logUnparseable records the raw completion behind a decode failure.
func logUnparseable(ctx context.Context, log *slog.Logger, op string, err error) {
	var pe *sanitize.ParseError
	if !errors.As(err, &pe) {
		return
	}
	log.ErrorContext(ctx, "unparseable AI response",
		slog.String("op", op),
		slog.String("raw", truncate(pe.Raw, 1000)),
		slog.String("candidate", truncate(pe.Candidate, 500)),
		slog.String("error", pe.Err.Error()),
	)
}

func orDefault(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}
