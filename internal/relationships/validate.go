package relationships

import (
	"errors"
	"fmt"

	"example.com/whodunit/internal/config"
)

var (
	ErrDegree           = errors.New("suspect is not linked to every other suspect")
	ErrTooFewStrong     = errors.New("too few STRONG relationships")
	ErrNoConspiracyPair = errors.New("no conspiracy-compatible STRONG relationship")
	ErrTypeDominates    = errors.New("one relationship type covers too many pairs")
	ErrTooFewTypes      = errors.New("too few distinct relationship types")
)

// Rules are the replay-value constraints every network must meet.
type Rules struct {
	MinStrong        int
	MaxPerType       int
	MinDistinctTypes int
	MaxAttempts      int
}

// DefaultRules returns the constraints used for the five-suspect cast.
func DefaultRules() Rules {
	return Rules{MinStrong: 2, MaxPerType: 4, MinDistinctTypes: 3, MaxAttempts: 100}
}

// Validate checks the network against the default rules.
func Validate(n *Network) error {
	return DefaultRules().Validate(n)
}

// Validate returns nil for a valid network, or every violated rule joined into one error.
func (r Rules) Validate(n *Network) error {
	var errs []error

	want := len(n.suspects) - 1
	for _, s := range n.suspects {
		if d := n.Degree(s); d != want {
			errs = append(errs, fmt.Errorf("%w: %s has %d of %d", ErrDegree, s, d, want))
		}
	}
	for _, e := range n.edges {
		if e.A == e.B {
			errs = append(errs, fmt.Errorf("%w: %s is linked to itself", ErrDegree, e.A))
		}
	}

	strong := 0
	for _, e := range n.edges {
		if e.Type.Strength == config.StrengthStrong {
			strong++
		}
	}
	if strong < r.MinStrong {
		errs = append(errs, fmt.Errorf("%w: %d, want at least %d", ErrTooFewStrong, strong, r.MinStrong))
	}

	if len(n.ConspiracyCompatiblePairs()) == 0 {
		errs = append(errs, ErrNoConspiracyPair)
	}

	counts := n.TypeCounts()
	for id, c := range counts {
		if c > r.MaxPerType {
			errs = append(errs, fmt.Errorf("%w: %s on %d pairs, max %d", ErrTypeDominates, id, c, r.MaxPerType))
		}
	}
	if len(counts) < r.MinDistinctTypes {
		errs = append(errs, fmt.Errorf("%w: %d, want at least %d", ErrTooFewTypes, len(counts), r.MinDistinctTypes))
	}

	return errors.Join(errs...)
}
