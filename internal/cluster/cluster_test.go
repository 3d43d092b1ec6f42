package cluster

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id int, amount float64) Transaction {
	return Transaction{
		ID:          fmt.Sprintf("%d", id),
		Description: gofakeit.Company(),
		Amount:      decimal.NewFromFloat(amount),
	}
}

func sampleTransactions() []Transaction {
	// Three magnitude bands at ~10, ~1_000 and ~100_000. Within-band
	// spread is kept far below the band gaps so the k-means optimum is
	// the band split rather than splitting the widest band.
	return []Transaction{
		tx(1, 9), tx(2, 10), tx(3, 11), tx(4, 12),
		tx(5, 990), tx(6, 1000), tx(7, 1010),
		tx(8, 99900), tx(9, 100000), tx(10, 100100),
	}
}

func tiersByID(assignments []Assignment) map[string]int {
	out := make(map[string]int, len(assignments))
	for _, a := range assignments {
		out[a.TransactionID] = a.Tier
	}
	return out
}

func TestAssignTiersOrdering(t *testing.T) {
	result, err := AssignTiers(sampleTransactions(), Options{})
	require.NoError(t, err)
	require.Len(t, result.Assignments, 10)
	require.Len(t, result.Centroids, 3)

	tiers := tiersByID(result.Assignments)
	for _, id := range []string{"1", "2", "3", "4"} {
		assert.Equal(t, 0, tiers[id], "small amount tx %s", id)
	}
	for _, id := range []string{"5", "6", "7"} {
		assert.Equal(t, 1, tiers[id], "medium amount tx %s", id)
	}
	for _, id := range []string{"8", "9", "10"} {
		assert.Equal(t, 2, tiers[id], "large amount tx %s", id)
	}

	// Centroids come back sorted ascending, one per tier.
	assert.Less(t, result.Centroids[0], result.Centroids[1])
	assert.Less(t, result.Centroids[1], result.Centroids[2])
}

// Tier boundaries must not interleave: every amount in tier n is at most
// every amount in tier n+1.
func TestAssignTiersBoundaryInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	txs := make([]Transaction, 60)
	for i := range txs {
		txs[i] = tx(i, rng.Float64()*50000)
	}

	result, err := AssignTiers(txs, Options{})
	require.NoError(t, err)

	maxOf := map[int]float64{}
	minOf := map[int]float64{}
	for _, a := range result.Assignments {
		v, _ := a.Amount.Float64()
		if cur, ok := maxOf[a.Tier]; !ok || v > cur {
			maxOf[a.Tier] = v
		}
		if cur, ok := minOf[a.Tier]; !ok || v < cur {
			minOf[a.Tier] = v
		}
	}

	assert.LessOrEqual(t, maxOf[0], minOf[1])
	assert.LessOrEqual(t, maxOf[1], minOf[2])
}

func TestAssignTiersPermutationInvariant(t *testing.T) {
	base := sampleTransactions()
	want, err := AssignTiers(base, Options{})
	require.NoError(t, err)
	wantTiers := tiersByID(want.Assignments)

	rng := rand.New(rand.NewSource(99))
	for round := 0; round < 10; round++ {
		shuffled := append([]Transaction(nil), base...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got, err := AssignTiers(shuffled, Options{})
		require.NoError(t, err)
		assert.Equal(t, wantTiers, tiersByID(got.Assignments), "round %d", round)
	}
}

func TestAssignTiersDeterministic(t *testing.T) {
	txs := sampleTransactions()

	first, err := AssignTiers(txs, Options{})
	require.NoError(t, err)

	second, err := AssignTiers(txs, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Centroids, second.Centroids)
}

func TestAssignTiersInsufficientData(t *testing.T) {
	t.Run("two distinct values", func(t *testing.T) {
		txs := []Transaction{tx(1, 10), tx(2, 10), tx(3, 20), tx(4, 20)}
		_, err := AssignTiers(txs, Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("single repeated value", func(t *testing.T) {
		txs := []Transaction{tx(1, 5), tx(2, 5), tx(3, 5)}
		_, err := AssignTiers(txs, Options{})
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := AssignTiers(nil, Options{})
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}

func TestAssignTiersExactlyThreeDistinct(t *testing.T) {
	txs := []Transaction{tx(1, 1), tx(2, 100), tx(3, 10000)}
	result, err := AssignTiers(txs, Options{})
	require.NoError(t, err)

	tiers := tiersByID(result.Assignments)
	assert.Equal(t, 0, tiers["1"])
	assert.Equal(t, 1, tiers["2"])
	assert.Equal(t, 2, tiers["3"])
}

func TestAssignTiersPreservesRowData(t *testing.T) {
	txs := sampleTransactions()
	result, err := AssignTiers(txs, Options{})
	require.NoError(t, err)

	for i, a := range result.Assignments {
		assert.Equal(t, txs[i].ID, a.TransactionID)
		assert.Equal(t, txs[i].Description, a.Description)
		assert.True(t, txs[i].Amount.Equal(a.Amount))
	}
}
