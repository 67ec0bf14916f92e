package usecase

import (
	"context"
	"sort"
	"time"
)

// HealthCheck probes one dependency; nil means healthy.
type HealthCheck func(ctx context.Context) error

type HealthUsecase interface {
	// Check reports "ok" or "error" per dependency plus an overall "status".
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	checks map[string]HealthCheck
	// optional dependencies may fail without failing the overall status
	optional map[string]bool
}

func NewHealthUsecase(checks map[string]HealthCheck, optional ...string) HealthUsecase {
	opt := make(map[string]bool, len(optional))
	for _, name := range optional {
		opt[name] = true
	}
	return &healthUsecase{checks: checks, optional: opt}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	result := map[string]string{"status": "ok"}
	healthy := true
	for _, name := range names {
		if err := u.checks[name](ctx); err != nil {
			result[name] = "error"
			if !u.optional[name] {
				healthy = false
			}
			continue
		}
		result[name] = "ok"
	}
	if !healthy {
		result["status"] = "degraded"
	}
	return result, healthy
}
