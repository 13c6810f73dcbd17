package canvas

import (
	"cmp"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-mindcanvas/internal/normalize"
)

// tierCount is the number of intensity tiers when the scores allow it.
const tierCount = 3

// Tier groups emotion labels of similar intensity.
type Tier struct {
	Center float64  // Mean score of the tier
	Labels []string // Strongest first
}

// scoreObservation wraps an emotion score to implement clusters.Observation.
type scoreObservation struct {
	score  normalize.EmotionScore
	coords clusters.Coordinates
}

func (o scoreObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o scoreObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// TiersOf partitions a distribution into intensity tiers with k-means,
// ordered strongest first. Fewer than three distinct scores, or a failed
// partition, yield a single tier.
func TiersOf(dist normalize.EmotionDistribution) []Tier {
	if len(dist) == 0 {
		return nil
	}

	distinct := make(map[float64]bool, len(dist))
	var obs clusters.Observations
	for _, e := range dist {
		distinct[e.Score] = true
		obs = append(obs, scoreObservation{score: e, coords: clusters.Coordinates{e.Score}})
	}

	if len(distinct) < tierCount {
		return []Tier{singleTier(dist)}
	}

	km := kmeans.New()
	result, err := km.Partition(obs, tierCount)
	if err != nil {
		return []Tier{singleTier(dist)}
	}

	type group struct {
		scores []normalize.EmotionScore
		top    float64
	}

	// kmeans may reseed an empty cluster with an observation that already
	// belongs elsewhere, so each label is kept once.
	seen := make(map[string]bool, len(dist))
	var groups []group
	for _, cluster := range result {
		var g group
		for _, o := range cluster.Observations {
			so, ok := o.(scoreObservation)
			if !ok || seen[so.score.Label] {
				continue
			}
			seen[so.score.Label] = true
			g.scores = append(g.scores, so.score)
			g.top = max(g.top, so.score.Score)
		}
		if len(g.scores) > 0 {
			groups = append(groups, g)
		}
	}

	// Order by strongest member so the top score always lands in the first tier.
	slices.SortFunc(groups, func(a, b group) int {
		return cmp.Compare(b.top, a.top)
	})

	tiers := make([]Tier, len(groups))
	for i, g := range groups {
		tiers[i] = newTier(g.scores)
	}
	return tiers
}

func singleTier(dist normalize.EmotionDistribution) Tier {
	return newTier(slices.Clone(dist))
}

func newTier(scores []normalize.EmotionScore) Tier {
	slices.SortStableFunc(scores, func(a, b normalize.EmotionScore) int {
		return cmp.Compare(b.Score, a.Score)
	})

	var sum float64
	labels := make([]string, len(scores))
	for i, s := range scores {
		labels[i] = s.Label
		sum += s.Score
	}
	return Tier{Center: sum / float64(len(scores)), Labels: labels}
}
