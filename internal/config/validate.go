package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrInvalidConfig wraps every startup validation failure.
var ErrInvalidConfig = errors.New("invalid game configuration")

// Validate checks struct-level constraints and the cross references between tables.
// Malformed reference data is a configuration error, so it is caught here rather than inside a generator.
func (c *GameConfig) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		errs = append(errs, formatValidationError(err))
	}

	errs = append(errs, checkUnique("suspect", c.SuspectNames())...)
	errs = append(errs, checkUnique("weapon", c.WeaponNames())...)
	errs = append(errs, checkUnique("room", c.Rooms)...)
	ids := make([]string, len(c.RelationshipTypes))
	for i, rt := range c.RelationshipTypes {
		ids[i] = rt.ID
	}
	errs = append(errs, checkUnique("relationship type", ids)...)

	if _, err := c.Difficulty(c.DefaultDifficulty); err != nil {
		errs = append(errs, fmt.Errorf("defaultDifficulty: %w", err))
	}

	guiltyPossible := false
	for _, s := range c.Suspects {
		if s.HasAdequateMotive() {
			guiltyPossible = true
			break
		}
	}
	if !guiltyPossible {
		errs = append(errs, errors.New("suspects: at least one suspect needs a STRONG or MODERATE motive"))
	}

	errs = append(errs, c.checkFallbackNetwork()...)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// checkFallbackNetwork verifies the hand-authored network covers every suspect pair exactly once
// with known relationship types. Whether it also meets the network invariants is checked by the
// relationship generator, which owns those rules.
func (c *GameConfig) checkFallbackNetwork() []error {
	var errs []error
	seen := make(map[string]struct{})
	for i, e := range c.FallbackNetwork {
		if _, ok := c.suspects[e.A]; !ok {
			errs = append(errs, fmt.Errorf("fallbackNetwork[%d]: unknown suspect %q", i, e.A))
		}
		if _, ok := c.suspects[e.B]; !ok {
			errs = append(errs, fmt.Errorf("fallbackNetwork[%d]: unknown suspect %q", i, e.B))
		}
		if _, ok := c.relTypes[e.Type]; !ok {
			errs = append(errs, fmt.Errorf("fallbackNetwork[%d]: unknown relationship type %q", i, e.Type))
		}
		key := PairKey(e.A, e.B)
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("fallbackNetwork[%d]: pair %s listed twice", i, key))
		}
		seen[key] = struct{}{}
	}
	n := len(c.Suspects)
	if want := n * (n - 1) / 2; len(seen) != want {
		errs = append(errs, fmt.Errorf("fallbackNetwork: covers %d pairs, want %d", len(seen), want))
	}
	return errs
}

// PairKey returns an order-independent key for two suspects.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

func checkUnique(kind string, names []string) []error {
	var errs []error
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			errs = append(errs, fmt.Errorf("duplicate %s %q", kind, n))
		}
		seen[n] = struct{}{}
	}
	return errs
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
