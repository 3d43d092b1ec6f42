// Package cluster partitions transactions into three ordered magnitude
// tiers. Amounts are standardized, clustered with seeded k-means, and the
// engine's arbitrary cluster labels are remapped by centroid order so tier
// 0 always holds the lowest amounts and tier 2 the highest.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData indicates fewer than the requested number of distinct
// amount values exist, so k-means cannot form non-degenerate clusters.
var ErrInsufficientData = errors.New("cluster: insufficient distinct amounts")

// DefaultSeed keeps runs reproducible: the same input always yields the
// same clustering.
const DefaultSeed = 42

const (
	defaultTiers         = 3
	defaultMaxIterations = 300
)

// Transaction is one row of the clustering input.
type Transaction struct {
	ID          string
	Description string
	Amount      decimal.Decimal
}

// Assignment is a transaction's final magnitude tier.
type Assignment struct {
	TransactionID string
	Description   string
	Amount        decimal.Decimal
	Tier          int
}

// Result carries the per-transaction assignments and the standardized
// cluster centroids sorted ascending (index = tier).
type Result struct {
	Assignments []Assignment
	Centroids   []float64
}

// Options configures AssignTiers. Zero values select the defaults:
// 3 tiers, seed 42, 300 iterations.
type Options struct {
	Tiers         int
	Seed          int64
	MaxIterations int
}

func (o Options) withDefaults() Options {
	if o.Tiers == 0 {
		o.Tiers = defaultTiers
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = defaultMaxIterations
	}
	return o
}

// AssignTiers standardizes the amount column, runs k-means over it and
// returns each transaction's tier. The assignment is deterministic for a
// given option set and invariant under permutation of the input rows.
func AssignTiers(txs []Transaction, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	amounts := make([]float64, len(txs))
	for i, tx := range txs {
		amounts[i], _ = tx.Amount.Float64()
	}

	if distinctCount(amounts) < opts.Tiers {
		return nil, fmt.Errorf("%w: need at least %d distinct values", ErrInsufficientData, opts.Tiers)
	}

	scaled := standardize(amounts)
	centroids := kmeans1D(scaled, opts)

	// Remap the engine's raw labels to semantic tiers: sort
	// (centroid, raw label) ascending and index by rank.
	type labeled struct {
		centroid float64
		raw      int
	}
	order := make([]labeled, len(centroids))
	for i, c := range centroids {
		order[i] = labeled{centroid: c, raw: i}
	}
	sort.Slice(order, func(a, b int) bool { return order[a].centroid < order[b].centroid })

	tierOf := make(map[int]int, len(order))
	sortedCentroids := make([]float64, len(order))
	for rank, l := range order {
		tierOf[l.raw] = rank
		sortedCentroids[rank] = l.centroid
	}

	result := &Result{
		Assignments: make([]Assignment, len(txs)),
		Centroids:   sortedCentroids,
	}
	for i, tx := range txs {
		raw := nearest(scaled[i], centroids)
		result.Assignments[i] = Assignment{
			TransactionID: tx.ID,
			Description:   tx.Description,
			Amount:        tx.Amount,
			Tier:          tierOf[raw],
		}
	}
	return result, nil
}

// standardize subtracts the mean and divides by the standard deviation.
// K-means is scale-sensitive; without this the raw amount magnitude would
// dominate the distance metric.
func standardize(values []float64) []float64 {
	mean := stat.Mean(values, nil)
	std := stat.StdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		std = 1
	}

	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = (v - mean) / std
	}
	return scaled
}

// kmeans1D runs seeded Lloyd iterations over one-dimensional data and
// returns the final centroids. Initialization works on the sorted value
// multiset, so the outcome does not depend on input row order.
func kmeans1D(values []float64, opts Options) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	centroids := seedCentroids(sorted, opts.Tiers, opts.Seed)

	assignments := make([]int, len(sorted))
	for iter := 0; iter < opts.MaxIterations; iter++ {
		changed := false
		for i, v := range sorted {
			c := nearest(v, centroids)
			if assignments[i] != c {
				assignments[i] = c
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		sums := make([]float64, len(centroids))
		counts := make([]int, len(centroids))
		for i, v := range sorted {
			sums[assignments[i]] += v
			counts[assignments[i]]++
		}
		for c := range centroids {
			if counts[c] > 0 {
				centroids[c] = sums[c] / float64(counts[c])
			}
		}
	}
	return centroids
}

// seedCentroids picks initial centroids k-means++ style from the distinct
// sorted values, driven by a seeded source for reproducibility.
func seedCentroids(sorted []float64, k int, seed int64) []float64 {
	distinct := sorted[:0:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			distinct = append(distinct, v)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	centroids := make([]float64, 0, k)
	centroids = append(centroids, distinct[rng.Intn(len(distinct))])

	for len(centroids) < k {
		// Weight candidates by squared distance to their nearest chosen
		// centroid.
		weights := make([]float64, len(distinct))
		var totalWeight float64
		for i, v := range distinct {
			d := v - centroids[nearest(v, centroids)]
			weights[i] = d * d
			totalWeight += weights[i]
		}

		target := rng.Float64() * totalWeight
		chosen := len(distinct) - 1
		var acc float64
		for i, w := range weights {
			acc += w
			if acc >= target && w > 0 {
				chosen = i
				break
			}
		}
		centroids = append(centroids, distinct[chosen])
	}
	return centroids
}

func nearest(v float64, centroids []float64) int {
	best := 0
	bestDist := math.Abs(v - centroids[0])
	for i := 1; i < len(centroids); i++ {
		if d := math.Abs(v - centroids[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func distinctCount(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
