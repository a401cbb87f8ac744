package opt

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

func failingStrategy(name string) strategy {
	return strategy{Name: name, Run: func(context.Context, Problem, Params, *rand.Rand) (Route, error) {
		return Route{}, errors.New("simulated failure")
	}}
}

func TestHybridSurvivesStrategyFailure(t *testing.T) {
	p := NewProblem(clusterPoints(8))
	strats := []strategy{
		failingStrategy(AlgoGenetic),
		{Name: AlgoAntColony, Run: AntColony},
		{Name: AlgoGreedy, Run: func(ctx context.Context, p Problem, params Params, _ *rand.Rand) (Route, error) {
			return Greedy(ctx, p, params)
		}},
	}
	r, used, err := runHybrid(context.Background(), p, Params{}, 7, strats)
	if err != nil {
		t.Fatalf("hybrid with one failing strategy: %v", err)
	}
	if used == AlgoGenetic {
		t.Fatalf("winner %q never produced a route", used)
	}
	assertPermutation(t, r.Order, len(p.Points))
}

func TestHybridAllStrategiesFail(t *testing.T) {
	p := NewProblem(clusterPoints(4))
	strats := []strategy{failingStrategy(AlgoGenetic), failingStrategy(AlgoAntColony)}
	if _, _, err := runHybrid(context.Background(), p, Params{}, 1, strats); !errors.Is(err, ErrOptimizationFailed) {
		t.Fatalf("got %v, want ErrOptimizationFailed", err)
	}
}

func TestHybridNotWorseThanGreedy(t *testing.T) {
	p := NewProblem(clusterPoints(9))
	greedy, err := Greedy(context.Background(), p, DefaultParams())
	if err != nil {
		t.Fatalf("greedy: %v", err)
	}
	r, _, err := Hybrid(context.Background(), p, DefaultParams(), 3)
	if err != nil {
		t.Fatalf("hybrid: %v", err)
	}
	if r.TotalDistanceKm > greedy.TotalDistanceKm+1e-9 {
		t.Fatalf("hybrid %.4f km worse than greedy %.4f km", r.TotalDistanceKm, greedy.TotalDistanceKm)
	}
}

func TestHybridEmpty(t *testing.T) {
	if _, _, err := Hybrid(context.Background(), NewProblem(nil), Params{}, 1); err != ErrNoPoints {
		t.Fatalf("got %v, want ErrNoPoints", err)
	}
}

func TestSolveReportsWinningAlgorithm(t *testing.T) {
	pts := clusterPoints(6)
	sol, err := Solve(context.Background(), pts, AlgoGreedy, Params{}, 5)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if sol.Algorithm != AlgoGreedy {
		t.Fatalf("algorithm = %q, want %q", sol.Algorithm, AlgoGreedy)
	}
	assertPermutation(t, sol.Route.Order, len(pts))
	if sol.Duration <= 0 {
		t.Fatalf("duration = %v, want > 0", sol.Duration)
	}
}

func TestSolveUnknownAlgorithmFallsBackToHybrid(t *testing.T) {
	sol, err := Solve(context.Background(), clusterPoints(5), "", Params{}, 9)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	switch sol.Algorithm {
	case AlgoGreedy, AlgoGenetic, AlgoAntColony:
	default:
		t.Fatalf("unexpected winning strategy %q", sol.Algorithm)
	}
}

func TestSolveEmpty(t *testing.T) {
	if _, err := Solve(context.Background(), nil, AlgoGreedy, Params{}, 1); err != ErrNoPoints {
		t.Fatalf("got %v, want ErrNoPoints", err)
	}
}

func TestSolvePointIDs(t *testing.T) {
	pts := clusterPoints(4)
	sol, err := Solve(context.Background(), pts, AlgoGreedy, Params{}, 1)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	ids := sol.Route.PointIDs(sol.Problem)
	if len(ids) != len(pts) {
		t.Fatalf("got %d ids, want %d", len(ids), len(pts))
	}
	seen := map[string]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	for _, pt := range pts {
		if !seen[pt.ID] {
			t.Fatalf("id %q missing from %v", pt.ID, ids)
		}
	}
}

func TestHybridStrategyTimeoutContained(t *testing.T) {
	p := NewProblem(clusterPoints(5))
	slow := strategy{Name: AlgoGenetic, Run: func(ctx context.Context, _ Problem, _ Params, _ *rand.Rand) (Route, error) {
		<-ctx.Done()
		return Route{}, ctx.Err()
	}}
	fast := strategy{Name: AlgoGreedy, Run: func(ctx context.Context, p Problem, params Params, _ *rand.Rand) (Route, error) {
		return Greedy(ctx, p, params)
	}}
	params := Params{StrategyTimeout: 50 * time.Millisecond}
	r, used, err := runHybrid(context.Background(), p, params, 1, []strategy{slow, fast})
	if err != nil {
		t.Fatalf("hybrid: %v", err)
	}
	if used != AlgoGreedy {
		t.Fatalf("winner = %q, want %q", used, AlgoGreedy)
	}
	assertPermutation(t, r.Order, len(p.Points))
}
