package config

import (
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/copyleftdev/SOLVR/internal/solver"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Solver struct {
		// Backend selects the LP/MIP engine; the knapsack tool always uses
		// the combinatorial engine.
		Backend string `env:"SOLVER_BACKEND" envDefault:"simplex"`
		// TimeLimit is advisory and delegated to the engine.
		TimeLimit time.Duration `env:"SOLVER_TIME_LIMIT" envDefault:"30s"`
		MaxNodes  int           `env:"SOLVER_MAX_NODES" envDefault:"10000"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Environment == "development" && cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

// SolverOptions maps the solver configuration onto per-call options.
func (c *Config) SolverOptions() solver.Options {
	return solver.Options{
		Backend:   c.Solver.Backend,
		TimeLimit: c.Solver.TimeLimit,
		MaxNodes:  c.Solver.MaxNodes,
	}
}
