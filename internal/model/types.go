package model

// Request/response types for the optimization API.

type PointIn struct {
	ID       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lon"`
	Priority int     `json:"priority,omitempty"`
}

type PartnerIn struct {
	ID         string   `json:"id"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lon"`
	Capacity   int      `json:"capacity,omitempty"`
	Efficiency *float64 `json:"efficiency_score,omitempty"` // nil means unknown, defaulted to 0.5
}

// Constraints carries every caller-tunable engine parameter. Zero/absent
// fields fall back to the engine defaults.
type Constraints struct {
	Algorithm         string   `json:"algorithm,omitempty"`
	PopulationSize    int      `json:"population_size,omitempty"`
	Generations       int      `json:"generations,omitempty"`
	MutationRate      float64  `json:"mutation_rate,omitempty"`
	CrossoverRate     float64  `json:"crossover_rate,omitempty"`
	AntCount          int      `json:"ant_count,omitempty"`
	Iterations        int      `json:"iterations,omitempty"`
	EvaporationRate   float64  `json:"evaporation_rate,omitempty"`
	Alpha             float64  `json:"alpha,omitempty"`
	Beta              float64  `json:"beta,omitempty"`
	BaseSpeedKmh      float64  `json:"base_speed_kmh,omitempty"`
	StopMinutes       float64  `json:"stop_minutes,omitempty"`
	MaxEfficiencyKmh  float64  `json:"max_efficiency_kmh,omitempty"`
	Strategies        []string `json:"strategies,omitempty"`
	StrategyTimeoutMs int      `json:"strategy_timeout_ms,omitempty"`
}

type OptimizeRouteRequest struct {
	DeliveryPoints   []PointIn   `json:"delivery_points"`
	PartnerLocations []PointIn   `json:"partner_locations,omitempty"`
	Constraints      Constraints `json:"constraints"`
	Seed             int64       `json:"seed,omitempty"`
}

type OptimizeRouteResponse struct {
	RunID              string   `json:"run_id"`
	OptimizedRoute     []string `json:"optimized_route"`
	TotalDistance      float64  `json:"total_distance"`
	EstimatedTime      float64  `json:"estimated_time"`
	EfficiencyScore    float64  `json:"efficiency_score"`
	AlgorithmUsed      string   `json:"algorithm_used"`
	OptimizationTimeMs int64    `json:"optimization_time_ms"`
}

type AssignmentRequest struct {
	Orders      []PointIn   `json:"orders"`
	Partners    []PartnerIn `json:"partners"`
	Constraints Constraints `json:"constraints"`
}

type AssignmentPair struct {
	OrderID               string  `json:"order_id"`
	PartnerID             string  `json:"partner_id"`
	Distance              float64 `json:"distance"`
	Cost                  float64 `json:"cost"`
	EfficiencyScore       float64 `json:"efficiency_score"`
	EstimatedDeliveryTime float64 `json:"estimated_delivery_time"`
}

type AssignmentResponse struct {
	RunID              string           `json:"run_id"`
	Assignments        []AssignmentPair `json:"assignments"`
	TotalCost          float64          `json:"total_cost"`
	AverageEfficiency  float64          `json:"average_efficiency"`
	UnassignedOrders   []string         `json:"unassigned_orders"`
	UnassignedPartners []string         `json:"unassigned_partners"`
}

type RealTimeDelta struct {
	EdgeFrom     string  `json:"edge_from"`
	EdgeTo       string  `json:"edge_to"`
	AddedMinutes float64 `json:"added_minutes"`
}

type AdjustRequest struct {
	CurrentRoute      []PointIn     `json:"current_route"`
	RealTimeDelta     RealTimeDelta `json:"real_time_delta"`
	ThresholdFraction float64       `json:"threshold_fraction,omitempty"`
	Algorithm         string        `json:"algorithm,omitempty"`
	Constraints       Constraints   `json:"constraints"`
	Seed              int64         `json:"seed,omitempty"`
}

type AdjustResponse struct {
	AdjustmentNeeded bool     `json:"adjustment_needed"`
	AdjustedRoute    []string `json:"adjusted_route,omitempty"`
	AlgorithmUsed    string   `json:"algorithm_used,omitempty"`
	DeltaDistance    float64  `json:"delta_distance,omitempty"`
	DeltaTime        float64  `json:"delta_time,omitempty"`
}

type RunMetric struct {
	RunID      string  `json:"run_id"`
	Kind       string  `json:"kind"`
	Algorithm  string  `json:"algorithm"`
	Points     int     `json:"points"`
	DistanceKm float64 `json:"distance_km"`
	DurationMs int64   `json:"duration_ms"`
	Status     string  `json:"status"`
	StartedAt  string  `json:"started_at"`
}
