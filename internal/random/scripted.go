package random

// Scripted replays a fixed list of doubles and then returns Fallback forever. Every draw,
// including Intn and each step of Shuffle, consumes one value. It exists so tests can force a
// specific branch (a coin flip, a pick) without hunting for a seed.
type Scripted struct {
	values   []float64
	next     int
	Fallback float64
}

// NewScripted creates a scripted source that yields values in order.
func NewScripted(values ...float64) *Scripted {
	return &Scripted{values: values}
}

func (s *Scripted) Float64() float64 {
	if s.next < len(s.values) {
		v := s.values[s.next]
		s.next++
		return v
	}
	return s.Fallback
}

// Intn maps the next double onto [0, n).
func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		panic("random: invalid argument to Intn")
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Shuffle is a Fisher-Yates shuffle driven by Intn.
func (s *Scripted) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}

// Consumed returns how many scripted values have been drawn.
func (s *Scripted) Consumed() int {
	return s.next
}
