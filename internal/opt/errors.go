package opt

import "errors"

var (
	// ErrNoPoints is returned when a request carries no delivery points.
	ErrNoPoints = errors.New("no delivery points provided")
	// ErrOptimizationFailed is returned when every strategy in a run failed.
	ErrOptimizationFailed = errors.New("all optimization strategies failed")
	// ErrUnknownEdge is returned when a dynamic adjustment names an edge
	// whose endpoints are not in the current route.
	ErrUnknownEdge = errors.New("adjustment edge endpoints not in route")
)
