package challenge

import (
	"bufio"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/sortsim/internal/trace"
)

// Swap requests that positions I and J exchange values. I == J is a legal
// no-op.
type Swap struct {
	I, J int
}

// SwapSource yields swap requests for a sequence of the given length. The
// boolean is false once the source is exhausted.
type SwapSource interface {
	Next(length int) (Swap, bool)
}

// RandomSource picks two positions uniformly at random, standing in for a
// detected hand pointing at two bars. The positions may coincide.
type RandomSource struct {
	rng *rand.Rand
}

func NewRandomSource(rng *rand.Rand) *RandomSource {
	return &RandomSource{rng: rng}
}

func (s *RandomSource) Next(length int) (Swap, bool) {
	if length == 0 {
		return Swap{}, false
	}
	return Swap{I: s.rng.Intn(length), J: s.rng.Intn(length)}, true
}

// ScriptedSource replays a fixed list of swaps.
type ScriptedSource struct {
	swaps []Swap
	next  int
}

func NewScriptedSource(swaps ...Swap) *ScriptedSource {
	return &ScriptedSource{swaps: swaps}
}

func (s *ScriptedSource) Next(int) (Swap, bool) {
	if s.next >= len(s.swaps) {
		return Swap{}, false
	}
	sw := s.swaps[s.next]
	s.next++
	return sw, true
}

// SolutionSource replays the two-position writes of a trace, which sorts the
// trace's input the way the algorithm does.
func SolutionSource(tr *trace.Trace) *ScriptedSource {
	var swaps []Swap
	for _, step := range tr.All() {
		if len(step.Mutated) == 2 {
			swaps = append(swaps, Swap{I: step.Mutated[0], J: step.Mutated[1]})
		}
	}
	return NewScriptedSource(swaps...)
}

// ReaderSource reads one "i j" pair per line. Blank lines and lines starting
// with '#' are skipped. Reading stops at EOF or on the first malformed line;
// Err reports the latter.
type ReaderSource struct {
	sc  *bufio.Scanner
	err error
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{sc: bufio.NewScanner(r)}
}

func (s *ReaderSource) Next(int) (Swap, bool) {
	if s.err != nil {
		return Swap{}, false
	}
	for s.sc.Scan() {
		line := strings.TrimSpace(s.sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sw, err := ParseSwap(line)
		if err != nil {
			s.err = err
			return Swap{}, false
		}
		return sw, true
	}
	s.err = s.sc.Err()
	return Swap{}, false
}

func (s *ReaderSource) Err() error { return s.err }

// ParseSwap parses "i j" or "i,j".
func ParseSwap(line string) (Swap, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	if len(fields) != 2 {
		return Swap{}, errors.Newf("expected two positions, got %q", line)
	}
	i, err := strconv.Atoi(fields[0])
	if err != nil {
		return Swap{}, errors.Wrapf(err, "parsing %q", line)
	}
	j, err := strconv.Atoi(fields[1])
	if err != nil {
		return Swap{}, errors.Wrapf(err, "parsing %q", line)
	}
	return Swap{I: i, J: j}, nil
}
