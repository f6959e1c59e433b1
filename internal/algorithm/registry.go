package algorithm

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/sortsim/internal/trace"
)

// All returns the catalogue in presentation order.
func All() []Info {
	out := make([]Info, len(catalogue))
	copy(out, catalogue)
	return out
}

// IDs returns the supported identifiers in presentation order.
func IDs() []ID {
	ids := make([]ID, len(catalogue))
	for i, info := range catalogue {
		ids[i] = info.ID
	}
	return ids
}

// Parse resolves a case-insensitive name such as "Bubble" or "bubble".
func Parse(name string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(name)))
	if _, err := Lookup(id); err != nil {
		return "", err
	}
	return id, nil
}

func Lookup(id ID) (Info, error) {
	for _, info := range catalogue {
		if info.ID == id {
			return info, nil
		}
	}
	return Info{}, errors.Wrapf(ErrUnknown, "%q (available: %v)", string(id), IDs())
}

// Generate runs the generator registered for id over input.
func Generate(id ID, input []int) (*trace.Trace, error) {
	info, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return info.generate(input), nil
}
