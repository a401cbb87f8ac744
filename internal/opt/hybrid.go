package opt

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"
)

type strategyFunc func(ctx context.Context, p Problem, params Params, rng *rand.Rand) (Route, error)

type strategy struct {
	Name string
	Run  strategyFunc
}

func strategiesFor(params Params) []strategy {
	out := make([]strategy, 0, len(params.Strategies))
	for _, name := range params.Strategies {
		switch name {
		case AlgoGreedy:
			out = append(out, strategy{Name: AlgoGreedy, Run: func(ctx context.Context, p Problem, params Params, _ *rand.Rand) (Route, error) {
				return Greedy(ctx, p, params)
			}})
		case AlgoGenetic:
			out = append(out, strategy{Name: AlgoGenetic, Run: Genetic})
		case AlgoAntColony:
			out = append(out, strategy{Name: AlgoAntColony, Run: AntColony})
		}
	}
	return out
}

// Hybrid runs the configured strategy subset concurrently and keeps the
// best successful route by total distance. Individual failures and
// timeouts are logged and contained; only the case where every strategy
// fails surfaces as ErrOptimizationFailed. The returned string names the
// winning strategy.
func Hybrid(ctx context.Context, p Problem, params Params, seed int64) (Route, string, error) {
	return runHybrid(ctx, p, params, seed, strategiesFor(params.WithDefaults()))
}

func runHybrid(ctx context.Context, p Problem, params Params, seed int64, strats []strategy) (Route, string, error) {
	if len(p.Points) == 0 {
		return Route{}, "", ErrNoPoints
	}
	params = params.WithDefaults()

	type outcome struct {
		route Route
		err   error
	}
	results := make([]outcome, len(strats))
	var wg sync.WaitGroup
	for i, st := range strats {
		wg.Add(1)
		go func(i int, st strategy) {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, params.StrategyTimeout)
			defer cancel()
			// each sub-strategy gets its own RNG so concurrent runs stay
			// independent and reproducible
			rng := rand.New(rand.NewSource(seed + int64(i)))
			r, err := st.Run(sctx, p, params, rng)
			results[i] = outcome{route: r, err: err}
		}(i, st)
	}
	wg.Wait()

	bestIdx := -1
	bestDist := math.MaxFloat64
	for i, res := range results {
		if res.err != nil {
			log.Printf("hybrid: strategy %s failed: %v", strats[i].Name, res.err)
			continue
		}
		if res.route.TotalDistanceKm < bestDist {
			bestDist = res.route.TotalDistanceKm
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return Route{}, "", ErrOptimizationFailed
	}
	return results[bestIdx].route, strats[bestIdx].Name, nil
}

// Solution is the result of one Solve invocation.
type Solution struct {
	Problem   Problem
	Route     Route
	Algorithm string // winning strategy for hybrid, requested one otherwise
	Duration  time.Duration
}

// Solve dispatches one route construction request. Empty or unknown
// algorithm means hybrid. Seed 0 derives a seed from the wall clock.
func Solve(ctx context.Context, points []Point, algorithm string, params Params, seed int64) (Solution, error) {
	if len(points) == 0 {
		return Solution{}, ErrNoPoints
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	params = params.WithDefaults()
	p := NewProblem(points)
	start := time.Now()
	route, used, err := dispatch(ctx, p, algorithm, params, seed)
	if err != nil {
		if err == ErrOptimizationFailed || err == ErrNoPoints {
			return Solution{}, err
		}
		return Solution{}, fmt.Errorf("%w: %s: %v", ErrOptimizationFailed, used, err)
	}
	return Solution{Problem: p, Route: route, Algorithm: used, Duration: time.Since(start)}, nil
}

// dispatch runs one algorithm on an already-built problem. Used by Solve
// and by dynamic adjustment, which supplies a perturbed distance matrix.
func dispatch(ctx context.Context, p Problem, algorithm string, params Params, seed int64) (Route, string, error) {
	switch algorithm {
	case AlgoGreedy:
		r, err := Greedy(ctx, p, params)
		return r, AlgoGreedy, err
	case AlgoGenetic:
		r, err := Genetic(ctx, p, params, rand.New(rand.NewSource(seed)))
		return r, AlgoGenetic, err
	case AlgoAntColony:
		r, err := AntColony(ctx, p, params, rand.New(rand.NewSource(seed)))
		return r, AlgoAntColony, err
	default:
		return Hybrid(ctx, p, params, seed)
	}
}
