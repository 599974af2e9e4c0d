package closer

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// CloseWithLogOnError will close the given resource and log any relevant failure
func CloseWithLogOnError(name string, c io.Closer) {
	err := c.Close()
	if err == nil || errors.Is(err, os.ErrClosed) {
		return
	}

	l := log.With().CallerWithSkipFrameCount(3).Logger()
	l.Err(err).Msgf("Failed to close %s", name)
}

// DrainAndCloseWithLogOnError drains the reader before closing so the
// underlying connection can be reused.
func DrainAndCloseWithLogOnError(ctx context.Context, name string, c io.ReadCloser) {
	if _, err := io.Copy(io.Discard, c); err != nil {
		log.Ctx(ctx).Err(err).Msgf("Failed to drain %s", name)
	}
	CloseWithLogOnError(name, c)
}
