package assign

import (
	"math"
	"math/rand"
	"testing"
)

func matchCost(cost [][]float64, match []int) float64 {
	total := 0.0
	for i, j := range match {
		total += cost[i][j]
	}
	return total
}

// bruteForce enumerates all permutations to find the true minimum. Only
// usable on tiny matrices; it cross-checks the solver below.
func bruteForce(cost [][]float64) float64 {
	n := len(cost)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := math.Inf(1)
	var walk func(k int)
	walk = func(k int) {
		if k == n {
			if c := matchCost(cost, perm); c < best {
				best = c
			}
			return
		}
		for i := k; i < n; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			walk(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	walk(0)
	return best
}

func TestHungarianTwoByTwo(t *testing.T) {
	cost := [][]float64{
		{1, 4},
		{3, 2},
	}
	match := hungarian(cost)
	if match[0] != 0 || match[1] != 1 {
		t.Fatalf("match = %v, want [0 1]", match)
	}
	if got := matchCost(cost, match); got != 3 {
		t.Fatalf("total cost = %v, want 3", got)
	}
}

func TestHungarianIsValidMatching(t *testing.T) {
	cost := [][]float64{
		{9, 2, 7},
		{6, 4, 3},
		{5, 8, 1},
	}
	match := hungarian(cost)
	seen := map[int]bool{}
	for _, j := range match {
		if j < 0 || j >= len(cost) || seen[j] {
			t.Fatalf("not a permutation: %v", match)
		}
		seen[j] = true
	}
}

func TestHungarianMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(5)
		cost := make([][]float64, n)
		for i := range cost {
			cost[i] = make([]float64, n)
			for j := range cost[i] {
				cost[i][j] = rng.Float64() * 100
			}
		}
		got := matchCost(cost, hungarian(cost))
		want := bruteForce(cost)
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("trial %d n=%d: cost %v, brute force %v", trial, n, got, want)
		}
	}
}

func TestHungarianSingle(t *testing.T) {
	match := hungarian([][]float64{{42}})
	if len(match) != 1 || match[0] != 0 {
		t.Fatalf("match = %v, want [0]", match)
	}
}
