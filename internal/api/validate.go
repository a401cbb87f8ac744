package api

import (
	"fmt"
	"math"

	"courieropt/internal/model"
	"courieropt/internal/opt"
)

var knownAlgorithms = map[string]struct{}{
	opt.AlgoGreedy:    {},
	opt.AlgoGenetic:   {},
	opt.AlgoAntColony: {},
	opt.AlgoHybrid:    {},
}

func validateConstraints(c *model.Constraints) error {
	if c.Algorithm != "" {
		if _, ok := knownAlgorithms[c.Algorithm]; !ok {
			return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
		}
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation_rate must be in [0,1]")
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover_rate must be in [0,1]")
	}
	if c.EvaporationRate < 0 || c.EvaporationRate >= 1 {
		return fmt.Errorf("evaporation_rate must be in [0,1)")
	}
	if c.PopulationSize < 0 || c.Generations < 0 || c.AntCount < 0 || c.Iterations < 0 {
		return fmt.Errorf("population_size, generations, ant_count and iterations must be >= 0")
	}
	if c.BaseSpeedKmh < 0 || c.StopMinutes < 0 || c.MaxEfficiencyKmh < 0 {
		return fmt.Errorf("base_speed_kmh, stop_minutes and max_efficiency_kmh must be >= 0")
	}
	for _, s := range c.Strategies {
		if _, ok := knownAlgorithms[s]; !ok || s == opt.AlgoHybrid {
			return fmt.Errorf("invalid hybrid strategy: %s", s)
		}
	}
	return nil
}

func validatePoints(field string, pts []model.PointIn) error {
	if len(pts) == 0 {
		return fmt.Errorf("%s must not be empty", field)
	}
	seen := make(map[string]struct{}, len(pts))
	for i, p := range pts {
		if p.ID == "" {
			return fmt.Errorf("%s[%d]: id required", field, i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%s[%d]: duplicate id %s", field, i, p.ID)
		}
		seen[p.ID] = struct{}{}
		if err := validateCoord(p.Lat, p.Lng); err != nil {
			return fmt.Errorf("%s[%d]: %v", field, i, err)
		}
	}
	return nil
}

func validateCoord(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("malformed coordinates (%v, %v)", lat, lng)
	}
	return nil
}

func validateOptimizeRequest(req *model.OptimizeRouteRequest) error {
	if err := validatePoints("delivery_points", req.DeliveryPoints); err != nil {
		return err
	}
	return validateConstraints(&req.Constraints)
}

func validateAssignmentRequest(req *model.AssignmentRequest) error {
	if len(req.Orders) == 0 || len(req.Partners) == 0 {
		return fmt.Errorf("orders and partners must not be empty")
	}
	if err := validatePoints("orders", req.Orders); err != nil {
		return err
	}
	for i, p := range req.Partners {
		if p.ID == "" {
			return fmt.Errorf("partners[%d]: id required", i)
		}
		if err := validateCoord(p.Lat, p.Lng); err != nil {
			return fmt.Errorf("partners[%d]: %v", i, err)
		}
		if p.Capacity < 0 {
			return fmt.Errorf("partners[%d]: capacity must be >= 0", i)
		}
		if p.Efficiency != nil && (*p.Efficiency < 0 || *p.Efficiency > 1) {
			return fmt.Errorf("partners[%d]: efficiency_score must be in [0,1]", i)
		}
	}
	return validateConstraints(&req.Constraints)
}

func validateAdjustRequest(req *model.AdjustRequest) error {
	if err := validatePoints("current_route", req.CurrentRoute); err != nil {
		return err
	}
	if req.RealTimeDelta.EdgeFrom == "" || req.RealTimeDelta.EdgeTo == "" {
		return fmt.Errorf("real_time_delta edge_from and edge_to required")
	}
	if req.RealTimeDelta.AddedMinutes < 0 {
		return fmt.Errorf("real_time_delta added_minutes must be >= 0")
	}
	if req.ThresholdFraction < 0 || req.ThresholdFraction > 1 {
		return fmt.Errorf("threshold_fraction must be in [0,1]")
	}
	if req.Algorithm != "" {
		if _, ok := knownAlgorithms[req.Algorithm]; !ok {
			return fmt.Errorf("invalid algorithm: %s", req.Algorithm)
		}
	}
	return validateConstraints(&req.Constraints)
}
