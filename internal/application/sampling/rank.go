package sampling

import (
	"sort"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
)

// Score weights. Directly clickable, identifiable, small elements are the
// most reusable automation targets; large areas are usually layout wrappers.
const (
	scoreClickable = 1000
	scoreID        = 250
	scoreText      = 120
	scoreDesc      = 110
	scorePerDepth  = 12
	areaDivisor    = 1200
	maxAreaPenalty = 600
)

// Score computes the ranking score of a descriptor.
func Score(d domain.ElementDescriptor) int {
	score := 0
	if d.IsClickable() {
		score += scoreClickable
	}
	if d.HasID() {
		score += scoreID
	}
	if d.HasText() {
		score += scoreText
	}
	if d.HasDesc() {
		score += scoreDesc
	}
	if d.Depth != nil {
		score += *d.Depth * scorePerDepth
	}
	score -= min(maxAreaPenalty, d.Area/areaDivisor)
	return score
}

// Rank scores descriptors and orders them by descending score. Equal scores
// keep their input order.
func Rank(in []domain.ElementDescriptor) []domain.RankedDescriptor {
	out := make([]domain.RankedDescriptor, len(in))
	for i, d := range in {
		out[i] = domain.RankedDescriptor{ElementDescriptor: d, Score: Score(d)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
