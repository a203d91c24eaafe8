package merge

import "fmt"

// Score is the running total for one session.
type Score struct {
	total int
}

// Add adds points to the total. Panics on negative points since the score
// never decreases.
func (s *Score) Add(points int) {
	if points < 0 {
		panic(fmt.Sprintf("merge: negative score delta %d", points))
	}
	s.total += points
}

// Total returns the current score.
func (s *Score) Total() int {
	return s.total
}
