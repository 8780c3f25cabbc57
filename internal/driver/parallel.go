// Package driver provides batch helpers over whole sets of CFGs. The IR
// layer is single-threaded, but disjoint CFGs may be processed in parallel
// as long as they do not share a variable factory.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"fathom/internal/ir"
)

// CheckAll type-checks every CFG concurrently and reports the first
// failure. Each CFG is touched by exactly one goroutine.
func CheckAll(ctx context.Context, cfgs []*ir.CFG) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, c := range cfgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := ir.TypeCheck(c); err != nil {
				return fmt.Errorf("cfg %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// SimplifyAll simplifies every CFG concurrently.
func SimplifyAll(ctx context.Context, cfgs []*ir.CFG) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, c := range cfgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.Simplify()
			return nil
		})
	}
	return g.Wait()
}
