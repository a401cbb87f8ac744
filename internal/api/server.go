package api

import (
	"golang.org/x/time/rate"

	"courieropt/internal/config"
	"courieropt/internal/opt"
)

type Server struct {
	Cfg     config.Config
	Params  opt.Params
	Broker  EventBroker
	Limiter *rate.Limiter
}

// NewServer wires the engine defaults, the event broker, and the request
// rate limiter. Redis fan-out is used when a Redis URL is configured,
// otherwise the in-process channel broker.
func NewServer(cfg config.Config) (*Server, error) {
	var broker EventBroker
	if cfg.RedisURL != "" {
		rb, err := NewRedisBroker(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		broker = rb
	} else {
		broker = NewBroker()
	}
	return &Server{
		Cfg:     cfg,
		Params:  cfg.Engine.Params().WithDefaults(),
		Broker:  broker,
		Limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}, nil
}
