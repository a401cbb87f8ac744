package opt

import "time"

// Point is a single delivery stop. Inputs are request-scoped and never
// mutated by the engine.
type Point struct {
	ID       string
	Lat, Lng float64
	Priority int
	Window   *Window
}

// Window is an optional delivery time window on a Point.
type Window struct{ Start, End time.Time }

// Partner is a courier candidate for order assignment.
type Partner struct {
	ID         string
	Lat, Lng   float64
	Capacity   int
	Efficiency float64 // 0..1, higher is better
}

// Problem holds the points of one optimization request plus a precomputed
// symmetric distance matrix (km). The matrix is owned by one invocation;
// dynamic adjustment perturbs a fresh copy, never a shared one.
type Problem struct {
	Points []Point
	Dist   [][]float64
}

// NewProblem builds the haversine distance matrix for points.
func NewProblem(points []Point) Problem {
	n := len(points)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Haversine(points[i].Lat, points[i].Lng, points[j].Lat, points[j].Lng)
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return Problem{Points: points, Dist: dist}
}

// Route is an open path visiting every point of a Problem exactly once.
// Order holds indices into Problem.Points.
type Route struct {
	Order           []int
	TotalDistanceKm float64
	EstimatedMin    float64
	Efficiency      float64
}

// PointIDs maps the route order back to point IDs.
func (r Route) PointIDs(p Problem) []string {
	ids := make([]string, len(r.Order))
	for i, idx := range r.Order {
		ids[i] = p.Points[idx].ID
	}
	return ids
}

// Params carries all caller-tunable strategy parameters. Zero values mean
// "use the default".
type Params struct {
	// Genetic algorithm
	PopulationSize int
	Generations    int
	MutationRate   float64
	CrossoverRate  float64

	// Ant colony
	AntCount        int
	Iterations      int
	EvaporationRate float64
	Alpha           float64 // pheromone weight
	Beta            float64 // distance weight

	// Evaluator
	BaseSpeedKmh     float64
	StopMinutes      float64
	MaxEfficiencyKmh float64

	// Hybrid
	Strategies      []string // subset of greedy, genetic, ant_colony
	StrategyTimeout time.Duration
}

// DefaultParams returns the engine defaults.
func DefaultParams() Params {
	return Params{
		PopulationSize:   100,
		Generations:      50,
		MutationRate:     0.1,
		CrossoverRate:    0.8,
		AntCount:         50,
		Iterations:       100,
		EvaporationRate:  0.1,
		Alpha:            1.0,
		Beta:             2.0,
		BaseSpeedKmh:     30,
		StopMinutes:      5,
		MaxEfficiencyKmh: 50,
		Strategies:       []string{AlgoGenetic, AlgoAntColony, AlgoGreedy},
		StrategyTimeout:  10 * time.Second,
	}
}

// WithDefaults fills zero-valued fields with the engine defaults.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p.PopulationSize <= 0 {
		p.PopulationSize = d.PopulationSize
	}
	if p.Generations <= 0 {
		p.Generations = d.Generations
	}
	if p.MutationRate <= 0 {
		p.MutationRate = d.MutationRate
	}
	if p.CrossoverRate <= 0 {
		p.CrossoverRate = d.CrossoverRate
	}
	if p.AntCount <= 0 {
		p.AntCount = d.AntCount
	}
	if p.Iterations <= 0 {
		p.Iterations = d.Iterations
	}
	if p.EvaporationRate <= 0 {
		p.EvaporationRate = d.EvaporationRate
	}
	if p.Alpha <= 0 {
		p.Alpha = d.Alpha
	}
	if p.Beta <= 0 {
		p.Beta = d.Beta
	}
	if p.BaseSpeedKmh <= 0 {
		p.BaseSpeedKmh = d.BaseSpeedKmh
	}
	if p.StopMinutes <= 0 {
		p.StopMinutes = d.StopMinutes
	}
	if p.MaxEfficiencyKmh <= 0 {
		p.MaxEfficiencyKmh = d.MaxEfficiencyKmh
	}
	if len(p.Strategies) == 0 {
		p.Strategies = d.Strategies
	}
	if p.StrategyTimeout <= 0 {
		p.StrategyTimeout = d.StrategyTimeout
	}
	return p
}

// Algorithm names accepted by Solve.
const (
	AlgoGreedy    = "greedy"
	AlgoGenetic   = "genetic"
	AlgoAntColony = "ant_colony"
	AlgoHybrid    = "hybrid"
)
