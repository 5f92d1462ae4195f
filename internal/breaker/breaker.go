package breaker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/roach88/enigma/internal/combinator"
	"github.com/roach88/enigma/internal/machine"
	"github.com/roach88/enigma/internal/textfmt"
)

// Scorer rates a candidate decode. Implementations must be safe for
// concurrent use. *wordlist.Scorer satisfies it.
type Scorer interface {
	Score(text string) int
}

// DefaultProgressInterval is how often progress is logged during a search.
const DefaultProgressInterval = 5 * time.Second

// Breaker runs searches.
type Breaker struct {
	scorer   Scorer
	workers  int
	logger   *slog.Logger
	limit    int64
	interval time.Duration
	state    atomic.Int32
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithWorkers sets the number of search workers. Values below 1 select
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(b *Breaker) {
		b.workers = n
	}
}

// WithLogger sets the logger for state changes and progress.
func WithLogger(l *slog.Logger) Option {
	return func(b *Breaker) {
		b.logger = l
	}
}

// WithCandidateLimit makes Break refuse searches larger than limit
// candidates. Zero means no limit.
func WithCandidateLimit(limit int64) Option {
	return func(b *Breaker) {
		b.limit = limit
	}
}

// WithProgressInterval sets how often progress is logged at debug level.
func WithProgressInterval(d time.Duration) Option {
	return func(b *Breaker) {
		b.interval = d
	}
}

// New returns a Breaker that ranks decodes with scorer.
func New(scorer Scorer, opts ...Option) *Breaker {
	b := &Breaker{
		scorer:   scorer,
		logger:   slog.Default(),
		interval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.workers < 1 {
		b.workers = runtime.GOMAXPROCS(0)
	}
	return b
}

// State returns the current phase.
func (b *Breaker) State() State {
	return State(b.state.Load())
}

// Workers returns the configured worker count.
func (b *Breaker) Workers() int { return b.workers }

func (b *Breaker) setState(s State) {
	prev := State(b.state.Swap(int32(s)))
	b.logger.Debug("breaker state", "from", prev, "to", s)
}

// job is one (plugboard, reflector, wiring, rotor order) combination. The
// worker walks every position and ring-setting tuple under it.
type job struct {
	ordinal   int64
	plugboard []string
	reflector string
	wiring    combinator.Table
	rotors    []string
}

// search holds the read-only state shared by all workers.
type search struct {
	ciphertext []byte
	cribs      [][]byte
	positions  [][]int
	rings      [][]int

	tested  atomic.Int64
	matched atomic.Int64
}

// Break searches for the settings under which ciphertext decodes to text
// containing one of cribs and scoring highest. Cribs are normalized (case
// folded, non-letters dropped); an empty cribs list scores every decode.
// ciphertext must already consist of the letters A-Z only.
//
// The search is exhaustive. Cancelling ctx aborts it between jobs and
// returns the context's error.
func (b *Breaker) Break(ctx context.Context, ciphertext string, cribs []string, c Constraints) (*Result, error) {
	b.setState(GeneratingCombinations)
	defer b.setState(Done)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !textfmt.IsNormalized(ciphertext) {
		return nil, configErrorf("ciphertext", "must consist of letters A-Z only")
	}
	space, err := NewSearchSpace(c)
	if err != nil {
		return nil, err
	}
	if b.limit > 0 && space.Total.Cmp(bigInt(b.limit)) > 0 {
		return nil, &SearchTooLargeError{Size: space.Total, Limit: b.limit}
	}

	s := &search{ciphertext: []byte(ciphertext)}
	for i, crib := range cribs {
		norm := textfmt.Normalize(crib)
		if norm.Text == "" {
			return nil, configErrorf(fmt.Sprintf("cribs[%d]", i), "crib %q has no letters", crib)
		}
		s.cribs = append(s.cribs, []byte(norm.Text))
	}
	s.positions = slices.Collect(combinator.Product(positionUniverse(), c.positionSlots()))
	s.rings = slices.Collect(combinator.Product(allRings(), c.RingSettings))
	orders := slices.Collect(combinator.RotorOrders(machine.RotorNames(), c.Rotors))
	reflectors := slices.Collect(combinator.Reflectors(machine.ReflectorNames(), c.Reflectors))
	slots, err := combinator.ParseSlots(c.Plugboard)
	if err != nil {
		return nil, wrapConfigError("plugboard", err)
	}

	b.logger.Info("search space",
		"total", space.Total.String(),
		"plugboard", space.Plugboard.String(),
		"reflectors", space.Reflectors.String(),
		"reflector_wirings", space.ReflectorWirings.String(),
		"rotor_orders", space.RotorOrders.String(),
		"positions", space.Positions.String(),
		"ring_settings", space.RingSettings.String(),
		"cribs", len(s.cribs),
		"workers", b.workers)

	b.setState(Searching)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, 2*b.workers)

	g.Go(func() error {
		defer close(jobs)
		var ordinal int64
		for plug := range combinator.PlugboardAssignments(slots) {
			leads := machine.PairStrings(plug)
			for _, name := range reflectors {
				std, err := machine.StandardReflectorWiring(name)
				if err != nil {
					return err
				}
				wirings, err := combinator.ReflectorWirings(std, c.swaps())
				if err != nil {
					return wrapConfigError("reflector_swaps", err)
				}
				for wiring := range wirings {
					for _, order := range orders {
						if err := gctx.Err(); err != nil {
							return err
						}
						select {
						case jobs <- job{ordinal: ordinal, plugboard: leads, reflector: name, wiring: wiring, rotors: order}:
						case <-gctx.Done():
							return gctx.Err()
						}
						ordinal++
					}
				}
			}
		}
		return nil
	})

	progress := rate.Sometimes{Interval: b.interval}
	bests := make([]*candidate, b.workers)
	for w := range b.workers {
		g.Go(func() error {
			m := machine.New()
			buf := make([]byte, len(s.ciphertext))
			for j := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				best, err := b.runJob(m, buf, s, j)
				if err != nil {
					return fmt.Errorf("job %d: %w", j.ordinal, err)
				}
				if better(best, bests[w]) {
					bests[w] = best
				}
				progress.Do(func() {
					b.logger.Debug("search progress",
						"tested", s.tested.Load(),
						"matched", s.matched.Load(),
						"elapsed", time.Since(start).Round(time.Millisecond))
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		b.logger.Warn("search aborted", "tested", s.tested.Load(), "error", err)
		return nil, err
	}

	var best *candidate
	for _, cand := range bests {
		if better(cand, best) {
			best = cand
		}
	}

	res := &Result{Tested: s.tested.Load(), Matched: s.matched.Load()}
	if best != nil {
		res.Found = true
		res.Plaintext = best.plaintext
		res.Score = best.score
		res.Settings = best.settings
	}
	b.logger.Info("search finished",
		"found", res.Found,
		"score", res.Score,
		"tested", res.Tested,
		"matched", res.Matched,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return res, nil
}

// runJob decodes the ciphertext under every position and ring-setting tuple
// of j and returns the best candidate, or nil if none passed the crib
// filter.
func (b *Breaker) runJob(m *machine.Machine, buf []byte, s *search, j job) (*candidate, error) {
	err := m.Apply(machine.Settings{Rotors: j.rotors, Reflector: j.reflector, Plugboard: j.plugboard})
	if err != nil {
		return nil, err
	}
	if err := m.Reflector().SwapWiring(j.wiring); err != nil {
		return nil, err
	}

	rotors := m.Rotors()
	var (
		best    *candidate
		matched int64
		inner   int
	)
	for _, pos := range s.positions {
		if err := rotors.SetPositions(pos); err != nil {
			return nil, err
		}
		for _, ring := range s.rings {
			if err := rotors.SetRingSettings(ring); err != nil {
				return nil, err
			}
			m.Reset()
			if err := m.EncodeBytes(buf, s.ciphertext); err != nil {
				return nil, err
			}
			if s.passes(buf) {
				matched++
				text := string(buf)
				c := &candidate{
					key:       candidateKey{job: j.ordinal, inner: inner},
					plaintext: text,
					score:     b.scorer.Score(text),
				}
				if better(c, best) {
					c.settings = m.Settings()
					best = c
				}
			}
			inner++
		}
	}
	s.tested.Add(int64(inner))
	s.matched.Add(matched)
	return best, nil
}

// passes reports whether decoded contains a crib. With no cribs every
// decode passes.
func (s *search) passes(decoded []byte) bool {
	if len(s.cribs) == 0 {
		return true
	}
	for _, crib := range s.cribs {
		if bytes.Contains(decoded, crib) {
			return true
		}
	}
	return false
}
