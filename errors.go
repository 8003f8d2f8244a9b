package rapidscorer

import (
	"errors"
	"fmt"

	"github.com/hupe1980/rapidscorer/forest"
	"github.com/hupe1980/rapidscorer/scorer"
	"github.com/hupe1980/rapidscorer/scorer/simd"
)

var (
	// ErrInvalidConfig is the umbrella for configuration errors detected
	// at build time.
	ErrInvalidConfig = errors.New("invalid scorer configuration")
	// ErrShortDocument is the umbrella for documents that do not cover
	// every feature the forest splits on.
	ErrShortDocument = errors.New("document too short")
)

// ErrUnsupportedBlockWidth indicates a scalar block width outside
// {8, 16, 32, 64}.
type ErrUnsupportedBlockWidth struct {
	Width int
}

func (e *ErrUnsupportedBlockWidth) Error() string {
	return fmt.Sprintf("unsupported block width %d (want 8, 16, 32 or 64)", e.Width)
}

// translateError folds the package-specific error types produced during
// construction and scoring into the public error contract. The original
// error stays reachable through errors.Is and errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var short *forest.ErrShortDocument
	if errors.As(err, &short) {
		return fmt.Errorf("%w: %w", ErrShortDocument, err)
	}

	if errors.Is(err, scorer.ErrZeroThreads) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	var axis *scorer.ErrUnsupportedAxis
	if errors.As(err, &axis) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	var unsupported *simd.ErrUnsupported
	if errors.As(err, &unsupported) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	var width *ErrUnsupportedBlockWidth
	if errors.As(err, &width) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return err
}
