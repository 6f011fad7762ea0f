package health

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestCheckerNoChecksIsHealthy(t *testing.T) {
	r := NewChecker(0).Run(context.Background())
	if r.Status != Healthy || len(r.Checks) != 0 {
		t.Fatalf("unexpected report: %+v", r)
	}
}

func TestCheckerAggregates(t *testing.T) {
	c := NewChecker(time.Second)
	c.Register("database", func(context.Context) error { return errors.New("connection refused") })
	c.Register("disk", func(context.Context) error { return nil })

	r := c.Run(context.Background())
	if r.Status != Unhealthy {
		t.Fatalf("status=%s", r.Status)
	}
	if r.Checks["database"].Status != Unhealthy || r.Checks["database"].Error == "" {
		t.Fatalf("database check: %+v", r.Checks["database"])
	}
	if r.Checks["disk"].Status != Healthy {
		t.Fatalf("disk check: %+v", r.Checks["disk"])
	}
}

func TestCheckerTimeout(t *testing.T) {
	c := NewChecker(20 * time.Millisecond)
	c.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	start := time.Now()
	r := c.Run(context.Background())
	if r.Status != Unhealthy {
		t.Fatalf("status=%s", r.Status)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not applied")
	}
}

func TestCheckerSkipsChecksAfterCallerLeaves(t *testing.T) {
	c := NewChecker(time.Second)
	var ran atomic.Bool
	c.Register("database", func(context.Context) error {
		ran.Store(true)
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := c.Run(ctx)
	if ran.Load() {
		t.Fatalf("check ran after cancellation")
	}
	if r.Status != Unhealthy || r.Checks["database"].Status != Unhealthy {
		t.Fatalf("unexpected report: %+v", r)
	}
}

func TestCheckerBoundsConcurrency(t *testing.T) {
	c := NewChecker(time.Second)
	var running, peak atomic.Int32
	for i := 0; i < 3*MaxConcurrent; i++ {
		c.Register(fmt.Sprintf("check-%02d", i), func(context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return nil
		})
	}

	r := c.Run(context.Background())
	if r.Status != Healthy || len(r.Checks) != 3*MaxConcurrent {
		t.Fatalf("unexpected report: %+v", r)
	}
	if got := peak.Load(); got > MaxConcurrent {
		t.Fatalf("peak concurrency=%d limit=%d", got, MaxConcurrent)
	}
}
