package opt

import (
	"context"
	"testing"
)

func TestAdjustBelowThresholdKeepsRoute(t *testing.T) {
	pts := clusterPoints(5)
	delta := Delta{FromID: pts[0].ID, ToID: pts[1].ID, AddedMinutes: 0.01}
	adj, err := Adjust(context.Background(), pts, AlgoGreedy, Params{}, 1, delta, 0.1)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if adj.Needed {
		t.Fatal("minor delay should not trigger a recompute")
	}
	if adj.Route != nil {
		t.Fatal("no replacement route expected when adjustment is not needed")
	}
}

func TestAdjustAboveThresholdRecomputes(t *testing.T) {
	pts := clusterPoints(6)
	delta := Delta{FromID: pts[0].ID, ToID: pts[1].ID, AddedMinutes: 500}
	adj, err := Adjust(context.Background(), pts, AlgoGreedy, Params{}, 1, delta, 0.1)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if !adj.Needed {
		t.Fatal("large delay should trigger a recompute")
	}
	if adj.Route == nil {
		t.Fatal("expected a replacement route")
	}
	if adj.Algorithm != AlgoGreedy {
		t.Fatalf("algorithm = %q, want %q", adj.Algorithm, AlgoGreedy)
	}
	assertPermutation(t, adj.Route.Order, len(pts))
	// the recompute can only match or beat keeping the degraded route
	if adj.DeltaDistanceKm > 1e-9 {
		t.Fatalf("delta distance %.4f km, want <= 0", adj.DeltaDistanceKm)
	}
	if adj.DeltaMin > 1e-9 {
		t.Fatalf("delta minutes %.4f, want <= 0", adj.DeltaMin)
	}
}

func TestAdjustRoutesAroundPenalizedEdge(t *testing.T) {
	pts := rightTrianglePoints()
	// points arrive in current route order a,b,c; penalize a->b heavily
	delta := Delta{FromID: "a", ToID: "b", AddedMinutes: 600}
	adj, err := Adjust(context.Background(), pts, AlgoGreedy, Params{}, 1, delta, 0.1)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if !adj.Needed {
		t.Fatal("expected a recompute")
	}
	for i := 0; i < len(adj.Route.Order)-1; i++ {
		u, v := adj.Route.Order[i], adj.Route.Order[i+1]
		if (u == 0 && v == 1) || (u == 1 && v == 0) {
			t.Fatalf("replacement route still crosses the penalized edge: %v", adj.Route.Order)
		}
	}
}

func TestAdjustUnknownEdge(t *testing.T) {
	pts := clusterPoints(4)
	delta := Delta{FromID: pts[0].ID, ToID: "nope", AddedMinutes: 100}
	if _, err := Adjust(context.Background(), pts, AlgoGreedy, Params{}, 1, delta, 0.1); err != ErrUnknownEdge {
		t.Fatalf("got %v, want ErrUnknownEdge", err)
	}
}

func TestAdjustEmpty(t *testing.T) {
	if _, err := Adjust(context.Background(), nil, AlgoGreedy, Params{}, 1, Delta{}, 0.1); err != ErrNoPoints {
		t.Fatalf("got %v, want ErrNoPoints", err)
	}
}

func TestAdjustDefaultThreshold(t *testing.T) {
	pts := clusterPoints(5)
	delta := Delta{FromID: pts[0].ID, ToID: pts[1].ID, AddedMinutes: 0.001}
	adj, err := Adjust(context.Background(), pts, AlgoGreedy, Params{}, 1, delta, 0)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if adj.Needed {
		t.Fatal("tiny delay under the default threshold should not trigger")
	}
}
