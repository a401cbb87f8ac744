package opt

import (
	"context"
	"math"
	"testing"
)

// rightTrianglePoints places a at the corner, b 3 km north of a, and c
// 4 km east of b, so a-b-c traverses the two legs (hypotenuse a-c is 5).
func rightTrianglePoints() []Point {
	const degPerKm = 1 / 111.19492664455873 // equatorial, spherical
	return []Point{
		{ID: "a", Lat: 0, Lng: 0},
		{ID: "b", Lat: 3 * degPerKm, Lng: 0},
		{ID: "c", Lat: 3 * degPerKm, Lng: 4 * degPerKm},
	}
}

func TestGreedyRightTriangle(t *testing.T) {
	p := NewProblem(rightTrianglePoints())
	r, err := Greedy(context.Background(), p, Params{})
	if err != nil {
		t.Fatalf("greedy: %v", err)
	}
	want := []string{"a", "b", "c"}
	got := r.PointIDs(p)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
	// open path over both legs: 3 + 4, no return edge
	if math.Abs(r.TotalDistanceKm-7) > 0.05 {
		t.Fatalf("total distance: got %v, want ~7", r.TotalDistanceKm)
	}
}

func TestGreedySinglePoint(t *testing.T) {
	p := NewProblem([]Point{{ID: "only", Lat: 1, Lng: 1}})
	r, err := Greedy(context.Background(), p, Params{})
	if err != nil {
		t.Fatalf("greedy: %v", err)
	}
	if len(r.Order) != 1 || r.TotalDistanceKm != 0 {
		t.Fatalf("single point: got %+v", r)
	}
}

func TestGreedyEmpty(t *testing.T) {
	if _, err := Greedy(context.Background(), NewProblem(nil), Params{}); err != ErrNoPoints {
		t.Fatalf("empty: got %v, want ErrNoPoints", err)
	}
}

func TestGreedyIsPermutation(t *testing.T) {
	p := NewProblem(clusterPoints(9))
	r, err := Greedy(context.Background(), p, Params{})
	if err != nil {
		t.Fatalf("greedy: %v", err)
	}
	assertPermutation(t, r.Order, len(p.Points))
}

// clusterPoints spreads n points deterministically around a city center.
func clusterPoints(n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			ID:  string(rune('a' + i)),
			Lat: 12.9 + 0.013*float64(i%4) + 0.007*float64(i/4),
			Lng: 77.5 + 0.011*float64(i%3) + 0.009*float64(i/3),
		}
	}
	return pts
}

func assertPermutation(t *testing.T, order []int, n int) {
	t.Helper()
	if len(order) != n {
		t.Fatalf("length: got %d, want %d", len(order), n)
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			t.Fatalf("not a permutation: %v", order)
		}
		seen[idx] = true
	}
}
