// Package rooms hands out rooms to generated content so that no two pieces of content share a room.
package rooms

import (
	"example.com/whodunit/internal/random"

	"github.com/zyedidia/generic/mapset"
)

// Allocator is a shrinking set of unclaimed rooms. Every placement step claims from the same
// allocator, so a room can never be assigned twice regardless of the order steps run in.
type Allocator struct {
	order   []string
	claimed mapset.Set[string]
}

// NewAllocator shuffles rooms once and returns an allocator over them. Duplicate names are ignored.
func NewAllocator(rooms []string, src random.Source) *Allocator {
	known := mapset.New[string]()
	var order []string
	for _, r := range random.Shuffle(src, rooms) {
		if known.Has(r) {
			continue
		}
		known.Put(r)
		order = append(order, r)
	}
	return &Allocator{order: order, claimed: mapset.New[string]()}
}

// Claim takes a specific room. It returns false if the room is unknown or already taken.
func (a *Allocator) Claim(room string) bool {
	if a.claimed.Has(room) || !a.known(room) {
		return false
	}
	a.claimed.Put(room)
	return true
}

// Next claims the next unclaimed room in shuffled order.
func (a *Allocator) Next() (string, bool) {
	for _, r := range a.order {
		if !a.claimed.Has(r) {
			a.claimed.Put(r)
			return r, true
		}
	}
	return "", false
}

// Take claims up to n rooms. Fewer are returned when the allocator runs dry.
func (a *Allocator) Take(n int) []string {
	var out []string
	for len(out) < n {
		r, ok := a.Next()
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out
}

// Available lists the unclaimed rooms in shuffled order without claiming them.
func (a *Allocator) Available() []string {
	var out []string
	for _, r := range a.order {
		if !a.claimed.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Remaining is the number of unclaimed rooms.
func (a *Allocator) Remaining() int {
	return len(a.order) - a.claimed.Size()
}

func (a *Allocator) known(room string) bool {
	for _, r := range a.order {
		if r == room {
			return true
		}
	}
	return false
}
