package service

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/dragboard/internal/database/repository"
)

// Finder ranks cards against a typed query.
type Finder struct {
	// MaxDistance bounds fuzzy matches. Zero scales with the query length.
	MaxDistance int
}

type hit struct {
	card  repository.Card
	exact bool
	score int
}

// Search returns cards whose title contains query, ordered by match
// position, followed by near matches ordered by edit distance. A limit of
// zero or less returns every hit.
func (f Finder) Search(cards []repository.Card, query string, limit int) []repository.Card {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	maxDist := f.MaxDistance
	if maxDist <= 0 {
		maxDist = max(1, len(q)/3)
	}

	var hits []hit
	for _, c := range cards {
		title := strings.ToLower(c.Title)
		if i := strings.Index(title, q); i >= 0 {
			hits = append(hits, hit{card: c, exact: true, score: i})
			continue
		}
		if d := closestWord(title, q); d <= maxDist {
			hits = append(hits, hit{card: c, score: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.exact != b.exact {
			return a.exact
		}
		if a.score != b.score {
			return a.score < b.score
		}
		return a.card.Title < b.card.Title
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]repository.Card, len(hits))
	for i, h := range hits {
		out[i] = h.card
	}
	return out
}

func closestWord(title, q string) int {
	best := levenshtein.ComputeDistance(title, q)
	for _, w := range strings.Fields(title) {
		if d := levenshtein.ComputeDistance(w, q); d < best {
			best = d
		}
	}
	return best
}
