package match

import (
	"sort"
	"strings"

	"github.com/adrg/strutil/metrics"

	"github.com/gametrade/backend/internal/source"
)

// confidenceThreshold is a hard business rule: candidates whose raw
// similarity falls below it never drive a price recommendation, no matter
// how large their heuristic bonuses are.
const confidenceThreshold = 0.4

var dice = metrics.NewSorensenDice()

// Scored is a candidate with its similarity and composite score attached.
type Scored struct {
	Candidate  source.Candidate
	Similarity float64
	Score      float64
}

// SelectBest scores every candidate against the query and returns the top
// entry. The composite score is the bigram Dice similarity of the normalized
// strings weighted by 5, plus 1 when the candidate title contains the
// normalized query and 0.5 when the candidate ref contains the slugified
// query. Ties resolve to the first-seen candidate.
//
// The second return value is false when there are no candidates or the best
// one scores below the confidence threshold; the returned Scored still
// carries the best attempt for reporting.
func SelectBest(candidates []source.Candidate, query string) (Scored, bool) {
	if len(candidates) == 0 {
		return Scored{}, false
	}

	normQuery := Normalize(query)
	slug := Slugify(query)

	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		normTitle := Normalize(c.DisplayText)
		sim := dice.Compare(normTitle, normQuery)

		score := sim * 5
		if normQuery != "" && strings.Contains(normTitle, normQuery) {
			score += 1
		}
		if slug != "" && strings.Contains(strings.ToLower(c.Ref), slug) {
			score += 0.5
		}

		scored = append(scored, Scored{Candidate: c, Similarity: sim, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	best := scored[0]
	if best.Similarity < confidenceThreshold {
		return best, false
	}
	return best, true
}
