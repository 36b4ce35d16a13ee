package predict

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sportiq/internal/sports"
)

// History persists rendered blocks. It is optional.
type History interface {
	StoreOutcome(runID string, sport string, blocks []DisplayBlock, at time.Time) error
}

// Outcome is everything one fetch-and-render pass produced.
type Outcome struct {
	RunID   string         `json:"run_id"`
	Sport   sports.Sport   `json:"sport"`
	At      time.Time      `json:"at"`
	Shape   string         `json:"shape"`
	Items   int            `json:"items"`
	Skipped int            `json:"skipped"`
	Blocks  []DisplayBlock `json:"blocks"`
	Notices []Notice       `json:"notices"`
	Error   string         `json:"error,omitempty"`

	Err error `json:"-"`
}

// Empty reports whether the pass produced no blocks.
func (o Outcome) Empty() bool { return len(o.Blocks) == 0 }

// Session owns the long-lived pieces: fetcher, renderer and history.
type Session struct {
	fetcher  sports.Fetcher
	renderer *Renderer
	history  History
	now      func() time.Time
}

// NewSession wires a session. history may be nil.
func NewSession(fetcher sports.Fetcher, renderer *Renderer, history History) *Session {
	return &Session{
		fetcher:  fetcher,
		renderer: renderer,
		history:  history,
		now:      time.Now,
	}
}

// Run performs exactly one fetch and one render pass for sport. Fetch
// failures are reported through the outcome and never abort the caller.
func (s *Session) Run(ctx context.Context, sport sports.Sport) Outcome {
	out := Outcome{
		RunID: uuid.NewString(),
		Sport: sport,
		At:    s.now(),
	}

	res, err := s.fetcher.Fetch(ctx, sport)
	out.Notices = Notices(res, err)
	if err != nil {
		out.Err = err
		out.Error = err.Error()
		log.Warn().Err(err).Str("run_id", out.RunID).Str("sport", sport.String()).Msg("fetch failed")
		out.Blocks = []DisplayBlock{}
		return out
	}

	out.Shape = res.Shape.String()
	out.Items = res.Items
	out.Skipped = res.Skipped
	out.Blocks = s.renderer.Render(res.Matches)

	if s.history != nil && len(out.Blocks) > 0 {
		if err := s.history.StoreOutcome(out.RunID, sport.String(), out.Blocks, out.At); err != nil {
			log.Error().Err(err).Str("run_id", out.RunID).Msg("failed to persist predictions")
			if s.renderer.metrics != nil {
				s.renderer.metrics.HistoryWriteFailedInc()
			}
		}
	}

	log.Info().
		Str("run_id", out.RunID).
		Str("sport", sport.String()).
		Int("blocks", len(out.Blocks)).
		Msg("predictions rendered")

	return out
}
