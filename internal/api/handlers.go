package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"courieropt/internal/assign"
	"courieropt/internal/buildinfo"
	"courieropt/internal/metrics"
	"courieropt/internal/model"
	"courieropt/internal/opt"
)

// paramsFrom overlays non-zero request constraints on the server defaults.
func (s *Server) paramsFrom(c model.Constraints) opt.Params {
	p := s.Params
	if c.PopulationSize > 0 {
		p.PopulationSize = c.PopulationSize
	}
	if c.Generations > 0 {
		p.Generations = c.Generations
	}
	if c.MutationRate > 0 {
		p.MutationRate = c.MutationRate
	}
	if c.CrossoverRate > 0 {
		p.CrossoverRate = c.CrossoverRate
	}
	if c.AntCount > 0 {
		p.AntCount = c.AntCount
	}
	if c.Iterations > 0 {
		p.Iterations = c.Iterations
	}
	if c.EvaporationRate > 0 {
		p.EvaporationRate = c.EvaporationRate
	}
	if c.Alpha > 0 {
		p.Alpha = c.Alpha
	}
	if c.Beta > 0 {
		p.Beta = c.Beta
	}
	if c.BaseSpeedKmh > 0 {
		p.BaseSpeedKmh = c.BaseSpeedKmh
	}
	if c.StopMinutes > 0 {
		p.StopMinutes = c.StopMinutes
	}
	if c.MaxEfficiencyKmh > 0 {
		p.MaxEfficiencyKmh = c.MaxEfficiencyKmh
	}
	if len(c.Strategies) > 0 {
		p.Strategies = c.Strategies
	}
	if c.StrategyTimeoutMs > 0 {
		p.StrategyTimeout = time.Duration(c.StrategyTimeoutMs) * time.Millisecond
	}
	return p
}

func toPoints(in []model.PointIn) []opt.Point {
	out := make([]opt.Point, len(in))
	for i, p := range in {
		out[i] = opt.Point{ID: p.ID, Lat: p.Lat, Lng: p.Lng, Priority: p.Priority}
	}
	return out
}

func toPartners(in []model.PartnerIn) []opt.Partner {
	out := make([]opt.Partner, len(in))
	for i, p := range in {
		eff := 0.5
		if p.Efficiency != nil {
			eff = *p.Efficiency
		}
		cap := p.Capacity
		if cap <= 0 {
			cap = 1
		}
		out[i] = opt.Partner{ID: p.ID, Lat: p.Lat, Lng: p.Lng, Capacity: cap, Efficiency: eff}
	}
	return out
}

// writeEngineProblem maps engine errors onto problem responses.
func writeEngineProblem(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, opt.ErrNoPoints), errors.Is(err, opt.ErrUnknownEdge):
		writeProblem(w, http.StatusBadRequest, "Invalid input", err.Error(), r.URL.Path)
	case errors.Is(err, opt.ErrOptimizationFailed):
		writeProblem(w, http.StatusUnprocessableEntity, "Optimization failed", err.Error(), r.URL.Path)
	case errors.Is(err, assign.ErrInfeasible):
		writeProblem(w, http.StatusUnprocessableEntity, "Assignment infeasible", err.Error(), r.URL.Path)
	default:
		writeProblem(w, http.StatusInternalServerError, "Optimization error", err.Error(), r.URL.Path)
	}
}

// OptimizeRouteHandler handles POST /v1/optimize/route
func (s *Server) OptimizeRouteHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.OptimizeRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := validateOptimizeRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid optimize request", err.Error(), r.URL.Path)
		return
	}

	runID := uuid.New().String()
	params := s.paramsFrom(req.Constraints)
	algorithm := req.Constraints.Algorithm
	if algorithm == "" {
		algorithm = opt.AlgoHybrid
	}
	start := time.Now()
	s.Broker.Publish(runID, RunEvent{Type: "optimization.started", Data: map[string]any{
		"runId": runID, "algorithm": algorithm, "points": len(req.DeliveryPoints),
	}})

	sol, err := opt.Solve(r.Context(), toPoints(req.DeliveryPoints), algorithm, params, req.Seed)
	if err != nil {
		metrics.Optimizations.WithLabelValues(algorithm, "failed").Inc()
		opt.RecordRun(opt.RunRecord{
			RunID: runID, Kind: "route", Algorithm: algorithm,
			Points: len(req.DeliveryPoints), DurationMs: time.Since(start).Milliseconds(),
			Status: "failed", StartedAt: start,
		})
		s.Broker.Publish(runID, RunEvent{Type: "optimization.failed", Data: map[string]any{
			"runId": runID, "algorithm": algorithm, "error": err.Error(),
		}})
		writeEngineProblem(w, r, err)
		return
	}

	metrics.Optimizations.WithLabelValues(sol.Algorithm, "ok").Inc()
	metrics.OptimizationDuration.WithLabelValues(sol.Algorithm).Observe(sol.Duration.Seconds())
	opt.RecordRun(opt.RunRecord{
		RunID: runID, Kind: "route", Algorithm: sol.Algorithm,
		Points: len(req.DeliveryPoints), DistanceKm: sol.Route.TotalDistanceKm,
		DurationMs: sol.Duration.Milliseconds(), Status: "ok", StartedAt: start,
	})
	s.Broker.Publish(runID, RunEvent{Type: "optimization.completed", Data: map[string]any{
		"runId": runID, "algorithm": sol.Algorithm,
		"totalDistance": sol.Route.TotalDistanceKm, "durationMs": sol.Duration.Milliseconds(),
	}})

	writeJSON(w, http.StatusOK, model.OptimizeRouteResponse{
		RunID:              runID,
		OptimizedRoute:     sol.Route.PointIDs(sol.Problem),
		TotalDistance:      sol.Route.TotalDistanceKm,
		EstimatedTime:      sol.Route.EstimatedMin,
		EfficiencyScore:    sol.Route.Efficiency,
		AlgorithmUsed:      sol.Algorithm,
		OptimizationTimeMs: sol.Duration.Milliseconds(),
	})
}

// AssignmentHandler handles POST /v1/optimize/assignment
func (s *Server) AssignmentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.AssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := validateAssignmentRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid assignment request", err.Error(), r.URL.Path)
		return
	}

	runID := uuid.New().String()
	start := time.Now()
	res, err := assign.Solve(toPoints(req.Orders), toPartners(req.Partners), s.paramsFrom(req.Constraints))
	if err != nil {
		metrics.Assignments.WithLabelValues("failed").Inc()
		writeEngineProblem(w, r, err)
		return
	}
	metrics.Assignments.WithLabelValues("ok").Inc()
	opt.RecordRun(opt.RunRecord{
		RunID: runID, Kind: "assignment", Algorithm: "hungarian",
		Points: len(req.Orders), DurationMs: time.Since(start).Milliseconds(),
		Status: "ok", StartedAt: start,
	})

	pairs := make([]model.AssignmentPair, len(res.Pairs))
	for i, p := range res.Pairs {
		pairs[i] = model.AssignmentPair{
			OrderID:               p.OrderID,
			PartnerID:             p.PartnerID,
			Distance:              p.DistanceKm,
			Cost:                  p.Cost,
			EfficiencyScore:       p.Efficiency,
			EstimatedDeliveryTime: p.EstimatedMin,
		}
	}
	writeJSON(w, http.StatusOK, model.AssignmentResponse{
		RunID:              runID,
		Assignments:        pairs,
		TotalCost:          res.TotalCost,
		AverageEfficiency:  res.AverageEfficiency,
		UnassignedOrders:   orEmpty(res.UnassignedOrders),
		UnassignedPartners: orEmpty(res.UnassignedPartners),
	})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// AdjustHandler handles POST /v1/optimize/adjust
func (s *Server) AdjustHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := validateAdjustRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid adjust request", err.Error(), r.URL.Path)
		return
	}

	points := toPoints(req.CurrentRoute)
	delta := opt.Delta{
		FromID:       req.RealTimeDelta.EdgeFrom,
		ToID:         req.RealTimeDelta.EdgeTo,
		AddedMinutes: req.RealTimeDelta.AddedMinutes,
	}
	start := time.Now()
	adj, err := opt.Adjust(r.Context(), points, req.Algorithm, s.paramsFrom(req.Constraints), req.Seed, delta, req.ThresholdFraction)
	if err != nil {
		writeEngineProblem(w, r, err)
		return
	}
	if adj.Needed {
		opt.RecordRun(opt.RunRecord{
			RunID: uuid.New().String(), Kind: "adjustment", Algorithm: adj.Algorithm,
			Points: len(points), DistanceKm: adj.Route.TotalDistanceKm,
			DurationMs: time.Since(start).Milliseconds(), Status: "ok", StartedAt: start,
		})
	}
	resp := model.AdjustResponse{AdjustmentNeeded: adj.Needed}
	if adj.Needed {
		ids := make([]string, len(adj.Route.Order))
		for i, idx := range adj.Route.Order {
			ids[i] = points[idx].ID
		}
		resp.AdjustedRoute = ids
		resp.AlgorithmUsed = adj.Algorithm
		resp.DeltaDistance = adj.DeltaDistanceKm
		resp.DeltaTime = adj.DeltaMin
	}
	writeJSON(w, http.StatusOK, resp)
}

// OptimizerConfigHandler returns the effective engine defaults
func (s *Server) OptimizerConfigHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"defaults": map[string]any{
		"algorithm":           opt.AlgoHybrid,
		"population_size":     s.Params.PopulationSize,
		"generations":         s.Params.Generations,
		"mutation_rate":       s.Params.MutationRate,
		"crossover_rate":      s.Params.CrossoverRate,
		"ant_count":           s.Params.AntCount,
		"iterations":          s.Params.Iterations,
		"evaporation_rate":    s.Params.EvaporationRate,
		"alpha":               s.Params.Alpha,
		"beta":                s.Params.Beta,
		"base_speed_kmh":      s.Params.BaseSpeedKmh,
		"stop_minutes":        s.Params.StopMinutes,
		"max_efficiency_kmh":  s.Params.MaxEfficiencyKmh,
		"strategies":          s.Params.Strategies,
		"strategy_timeout_ms": s.Params.StrategyTimeout.Milliseconds(),
	}})
}

// RunsHandler dispatches /v1/runs/ subpaths: metrics, ws, and the
// per-run (or wildcard) SSE event stream.
func (s *Server) RunsHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/runs/")
	switch {
	case rest == "metrics":
		s.runMetrics(w, r)
	case rest == "ws":
		s.RunEventsWSHandler(w, r)
	case rest == "events/stream":
		s.streamRunEvents(w, r, allRuns)
	case strings.HasSuffix(rest, "/events/stream"):
		s.streamRunEvents(w, r, strings.TrimSuffix(rest, "/events/stream"))
	default:
		writeProblem(w, http.StatusNotFound, "Not Found", "", r.URL.Path)
	}
}

func (s *Server) runMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	runs := opt.Runs()
	items := make([]model.RunMetric, len(runs))
	for i, rec := range runs {
		items[i] = model.RunMetric{
			RunID:      rec.RunID,
			Kind:       rec.Kind,
			Algorithm:  rec.Algorithm,
			Points:     rec.Points,
			DistanceKm: rec.DistanceKm,
			DurationMs: rec.DurationMs,
			Status:     rec.Status,
			StartedAt:  rec.StartedAt.UTC().Format(time.RFC3339Nano),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// streamRunEvents serves run lifecycle events as SSE until the client
// disconnects.
func (s *Server) streamRunEvents(w http.ResponseWriter, r *http.Request, runID string) {
	fl, ok := w.(http.Flusher)
	if !ok {
		writeProblem(w, http.StatusInternalServerError, "Streaming unsupported", "", r.URL.Path)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	fl.Flush()

	ch := s.Broker.Subscribe(runID)
	defer s.Broker.Unsubscribe(runID, ch)
	for {
		select {
		case <-r.Context().Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			data, _ := json.Marshal(evt.Data)
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, data)
			fl.Flush()
		}
	}
}

// HealthHandler handles GET /healthz
func (s *Server) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Info()})
}

// ReadyHandler handles GET /readyz
func (s *Server) ReadyHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
