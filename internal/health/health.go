package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

type Status string

const (
	Healthy   Status = "Healthy"
	Unhealthy Status = "Unhealthy"
)

// CheckFunc returns nil when the dependency is usable.
type CheckFunc func(ctx context.Context) error

type CheckResult struct {
	Status     Status `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

type Checker struct {
	timeout time.Duration
	names   []string
	checks  map[string]CheckFunc
}

func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Checker{timeout: timeout, checks: map[string]CheckFunc{}}
}

// Register adds a named check. Registering the same name twice replaces
// the earlier check. Not safe to call once Run is in use.
func (c *Checker) Register(name string, fn CheckFunc) {
	if _, ok := c.checks[name]; !ok {
		c.names = append(c.names, name)
		sort.Strings(c.names)
	}
	c.checks[name] = fn
}

// MaxConcurrent bounds how many checks run at once.
const MaxConcurrent = 4

// Run executes the checks concurrently, each bounded by the checker
// timeout. The report is Healthy only when all checks pass; with no checks
// registered it is Healthy. Checks still queued when ctx ends are reported
// Unhealthy without running.
func (c *Checker) Run(ctx context.Context) Report {
	report := Report{Status: Healthy, Checks: make(map[string]CheckResult, len(c.names))}
	var mu sync.Mutex
	record := func(name string, res CheckResult) {
		mu.Lock()
		report.Checks[name] = res
		if res.Status != Healthy {
			report.Status = Unhealthy
		}
		mu.Unlock()
	}

	// A failing check is a result; only the caller going away stops the group.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrent)
	for _, name := range c.names {
		name, fn := name, c.checks[name]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				record(name, CheckResult{Status: Unhealthy, Error: err.Error()})
				return err
			}
			cctx, cancel := context.WithTimeout(gctx, c.timeout)
			defer cancel()
			start := time.Now()
			err := fn(cctx)
			res := CheckResult{Status: Healthy, DurationMS: time.Since(start).Milliseconds()}
			if err != nil {
				res.Status = Unhealthy
				res.Error = err.Error()
			}
			record(name, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		report.Status = Unhealthy
	}
	return report
}
