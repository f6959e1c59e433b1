package challenge

import (
	"context"
	"log/slog"
	"math/rand"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/config"
	"github.com/san-kum/sortsim/internal/trace"
)

const (
	MaxLevel = 3

	minValue = 1
	maxValue = 10
)

// LevelSizes maps a level to the length of its random input.
var LevelSizes = map[int]int{1: 4, 2: 5, 3: 6}

var (
	ErrInvalidSwap = errors.New("challenge: swap position out of range")
	ErrCompleted   = errors.New("challenge: level already completed")
	ErrMaxLevel    = errors.New("challenge: no level after the last one")
)

// Feedback describes the outcome of one applied swap.
type Feedback struct {
	Swap     Swap
	Sequence []int
	// FollowsAlgorithm is true when the new sequence is one of the trace's
	// snapshots.
	FollowsAlgorithm bool
	// RuleOK is the algorithm's move rule applied to the swap positions.
	RuleOK    bool
	Completed bool
}

// Session is one player working through the levels of one algorithm.
type Session struct {
	id     algorithm.ID
	rng    *rand.Rand
	logger *slog.Logger

	level     int
	tr        *trace.Trace
	validator *Validator
	seq       []int
	moves     int
	completed bool
}

func NewSession(id algorithm.ID, rng *rand.Rand, logger *slog.Logger) (*Session, error) {
	if _, err := algorithm.Lookup(id); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{id: id, rng: rng, logger: logger.With("algorithm", string(id))}, nil
}

// Start begins level with a fresh random input of the level's size.
func (s *Session) Start(level int) error {
	size, ok := LevelSizes[level]
	if !ok {
		return errors.Newf("challenge: unknown level %d", level)
	}
	s.level = level
	s.load(config.RandomSequence(s.rng, size, minValue, maxValue))
	return nil
}

// StartWith begins the current level (1 if none) with an explicit input.
func (s *Session) StartWith(input []int) {
	if s.level == 0 {
		s.level = 1
	}
	s.load(slices.Clone(input))
}

func (s *Session) load(input []int) {
	tr, err := algorithm.Generate(s.id, input)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "challenge: generating trace"))
	}
	s.tr = tr
	s.validator = NewValidator(tr)
	s.seq = input
	s.moves = 0
	s.completed = s.validator.IsComplete(input)
	s.logger.Info("level started", "level", s.level, "input", input, "steps", tr.Len())
}

// NextLevel starts the level after the current one.
func (s *Session) NextLevel() error {
	if s.level >= MaxLevel {
		return ErrMaxLevel
	}
	return s.Start(s.level + 1)
}

// Apply swaps the two positions and validates the result. A swap of a
// position with itself leaves the sequence alone and is not counted.
func (s *Session) Apply(sw Swap) (Feedback, error) {
	if s.tr == nil {
		panic(errors.AssertionFailedf("challenge: swap before a level was started"))
	}
	if s.completed {
		return Feedback{}, ErrCompleted
	}
	n := len(s.seq)
	if sw.I < 0 || sw.I >= n || sw.J < 0 || sw.J >= n {
		return Feedback{}, errors.Wrapf(ErrInvalidSwap, "(%d, %d) with length %d", sw.I, sw.J, n)
	}

	if sw.I != sw.J {
		s.seq[sw.I], s.seq[sw.J] = s.seq[sw.J], s.seq[sw.I]
		s.moves++
	}
	fb := Feedback{
		Swap:             sw,
		Sequence:         slices.Clone(s.seq),
		FollowsAlgorithm: s.validator.Matches(s.seq),
		RuleOK:           IsCorrectMove(s.id, sw.I, sw.J),
		Completed:        s.validator.IsComplete(s.seq),
	}
	s.completed = fb.Completed

	if fb.FollowsAlgorithm {
		s.logger.Info("good move", "i", sw.I, "j", sw.J, "sequence", fb.Sequence)
	} else {
		s.logger.Debug("move off the algorithm's path", "i", sw.I, "j", sw.J, "sequence", fb.Sequence)
	}
	if fb.Completed {
		s.logger.Info("level complete", "level", s.level, "moves", s.moves)
	}
	return fb, nil
}

// Run pulls swaps from src until the level completes, src is exhausted,
// maxMoves swaps were applied (0 means no limit) or ctx is done. fn, if
// set, sees every feedback. Same-position swaps are skipped without
// counting as a move.
func (s *Session) Run(ctx context.Context, src SwapSource, maxMoves int, fn func(Feedback)) error {
	applied := 0
	for !s.completed && (maxMoves == 0 || applied < maxMoves) {
		if err := ctx.Err(); err != nil {
			return err
		}
		sw, ok := src.Next(len(s.seq))
		if !ok {
			return nil
		}
		if sw.I == sw.J {
			continue
		}
		fb, err := s.Apply(sw)
		if err != nil {
			return err
		}
		applied++
		if fn != nil {
			fn(fb)
		}
	}
	return nil
}

func (s *Session) Level() int { return s.level }

func (s *Session) Algorithm() algorithm.ID { return s.id }

// Sequence returns a copy of the sequence being sorted.
func (s *Session) Sequence() []int { return slices.Clone(s.seq) }

func (s *Session) Moves() int { return s.moves }

func (s *Session) Completed() bool { return s.completed }

// Trace returns the reference trace of the current level.
func (s *Session) Trace() *trace.Trace { return s.tr }
