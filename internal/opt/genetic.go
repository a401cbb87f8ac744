package opt

import (
	"context"
	"math/rand"
)

const tournamentSize = 3

// Genetic runs a permutation GA with tournament selection, order crossover
// and swap mutation. The RNG is caller-supplied so repeated runs with the
// same seed produce identical routes. Cancellation is checked once per
// generation.
func Genetic(ctx context.Context, p Problem, params Params, rng *rand.Rand) (Route, error) {
	if len(p.Points) == 0 {
		return Route{}, ErrNoPoints
	}
	params = params.WithDefaults()
	n := len(p.Points)
	if n == 1 {
		return evaluate(p, []int{0}, params), nil
	}

	pop := make([][]int, params.PopulationSize)
	for i := range pop {
		pop[i] = rng.Perm(n)
	}

	best := append([]int(nil), pop[0]...)
	bestDist := pathDistance(p, best)
	observe := func(cand []int) {
		if d := pathDistance(p, cand); d < bestDist {
			bestDist = d
			best = append(best[:0:0], cand...)
		}
	}
	for _, c := range pop {
		observe(c)
	}

	for g := 0; g < params.Generations; g++ {
		if err := ctx.Err(); err != nil {
			return Route{}, err
		}
		scores := make([]float64, len(pop))
		for i, c := range pop {
			scores[i] = fitness(pathDistance(p, c))
		}
		mating := make([][]int, len(pop))
		for i := range mating {
			mating[i] = pop[tournament(scores, rng)]
		}
		next := make([][]int, 0, len(pop))
		for i := 0; i+1 < len(mating); i += 2 {
			c1, c2 := mating[i], mating[i+1]
			if rng.Float64() < params.CrossoverRate {
				c1, c2 = orderCrossover(c1, c2, rng)
			} else {
				// pass through as copies so mutation never aliases a parent
				c1 = append([]int(nil), c1...)
				c2 = append([]int(nil), c2...)
			}
			mutate(c1, params.MutationRate, rng)
			mutate(c2, params.MutationRate, rng)
			next = append(next, c1, c2)
		}
		if len(mating)%2 == 1 {
			last := append([]int(nil), mating[len(mating)-1]...)
			mutate(last, params.MutationRate, rng)
			next = append(next, last)
		}
		pop = next
		for _, c := range pop {
			observe(c)
		}
	}
	return evaluate(p, best, params), nil
}

// tournament picks the fittest of tournamentSize distinct individuals.
func tournament(scores []float64, rng *rand.Rand) int {
	k := tournamentSize
	if k > len(scores) {
		k = len(scores)
	}
	winner := -1
	for _, i := range rng.Perm(len(scores))[:k] {
		if winner == -1 || scores[i] > scores[winner] {
			winner = i
		}
	}
	return winner
}

// orderCrossover implements OX: each child keeps one parent's segment
// [start,end) verbatim and fills the rest in the other parent's order,
// skipping points already present.
func orderCrossover(p1, p2 []int, rng *rand.Rand) ([]int, []int) {
	n := len(p1)
	start := rng.Intn(n)
	end := rng.Intn(n - 1)
	if end >= start {
		end++
	} else {
		start, end = end, start
	}
	return oxChild(p1, p2, start, end), oxChild(p2, p1, start, end)
}

func oxChild(keep, fill []int, start, end int) []int {
	n := len(keep)
	child := make([]int, n)
	used := make([]bool, n)
	for i := start; i < end; i++ {
		child[i] = keep[i]
		used[keep[i]] = true
	}
	j := 0
	for i := 0; i < n; i++ {
		if i >= start && i < end {
			continue
		}
		for used[fill[j]] {
			j++
		}
		child[i] = fill[j]
		used[fill[j]] = true
	}
	return child
}

// mutate swaps two distinct positions with probability rate.
func mutate(c []int, rate float64, rng *rand.Rand) {
	if len(c) < 2 || rng.Float64() >= rate {
		return
	}
	i := rng.Intn(len(c))
	j := rng.Intn(len(c) - 1)
	if j >= i {
		j++
	}
	c[i], c[j] = c[j], c[i]
}
