package repository

import "fmt"

// Criterion selects the ordering applied by the data source when listing
// publications.
type Criterion string

const (
	// ByScore orders by score, highest first.
	ByScore Criterion = "score"
	// ByAuthor orders by author id, highest first.
	ByAuthor Criterion = "author"
	// ByDate orders by publication date, newest first.
	ByDate Criterion = "date"
	// ByRandom shuffles on every call.
	ByRandom Criterion = "random"
	// ByQuantity yields one publication per author, authors with the most
	// publications first and author id breaking ties.
	ByQuantity Criterion = "quantity"
)

// Criteria lists every supported criterion.
var Criteria = []Criterion{ByScore, ByAuthor, ByDate, ByRandom, ByQuantity}

// Valid reports whether c is one of the supported criteria.
func (c Criterion) Valid() bool {
	for _, known := range Criteria {
		if c == known {
			return true
		}
	}
	return false
}

func (c Criterion) String() string { return string(c) }

// ParseCriterion converts a raw value into a Criterion.
func ParseCriterion(s string) (Criterion, error) {
	c := Criterion(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown sort criterion %q", s)
	}
	return c, nil
}
