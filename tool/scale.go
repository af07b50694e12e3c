// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tool

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/grailbio/ecsscale"
)

// A taskService is the subset of the ECS control plane used by the
// scale and status commands.
type taskService interface {
	ServiceTasks(ctx context.Context, service string) (int, error)
	SetServiceTasks(ctx context.Context, service string, n int) error
	Tasks(ctx context.Context) (int, error)
}

// A workerPool is the subset of the pool control plane used by the
// scale and status commands.
type workerPool interface {
	Bounds(ctx context.Context) (ecsscale.Bounds, error)
	SetBounds(ctx context.Context, b ecsscale.Bounds) error
}

// A dirFlag holds the direction selected by the -up/-down flag pair.
type dirFlag struct {
	dir ecsscale.Direction
	ok  bool
}

// A dirValue is one of the two boolean flags sharing a dirFlag; the
// flag given last wins.
type dirValue struct {
	flag *dirFlag
	dir  ecsscale.Direction
}

func (v dirValue) String() string { return "" }

func (v dirValue) IsBoolFlag() bool { return true }

func (v dirValue) Set(s string) error {
	t, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if t {
		v.flag.dir, v.flag.ok = v.dir, true
	}
	return nil
}

func (c *Cmd) scale(ctx context.Context, args ...string) {
	flags := flag.NewFlagSet("scale", flag.ExitOnError)
	help := `Scale performs one explicit scaling operation: it moves the
service's task count by the given delta and adjusts the bounds of the
auto scaling group backing the cluster to match the cluster's total
task demand. The pool is provisioned at half of the cluster's total
task count, with a floor of one worker for a single task.

The delta is either an absolute task count ("4") or a percentage of
the current count ("50%"). Percentage deltas round half up, and
always move at least one task when the service is at zero.

With -dry-run, the outcome is computed and reported without issuing
any update to the control planes.`
	var dir dirFlag
	flags.Var(dirValue{&dir, ecsscale.Up}, "up", "scale the service and its worker pool up")
	flags.Var(dirValue{&dir, ecsscale.Down}, "down", "scale the service and its worker pool down")
	var (
		clusterFlag = flags.String("cluster", "", "ECS cluster name")
		serviceFlag = flags.String("service", "", "ECS service name")
		poolFlag    = flags.String("pool", "", "name of the auto scaling group backing the cluster")
		tasksFlag   = flags.String("tasks", "", "delta: an absolute task count or a percentage (e.g., 4 or 50%)")
		dryRunFlag  = flags.Bool("dry-run", false, "report the outcome without updating anything")
	)
	c.Parse(flags, args, help, "scale -up|-down -cluster cluster -service service -pool pool -tasks delta")
	if flags.NArg() != 0 {
		flags.Usage()
	}
	if !dir.ok {
		c.Fatal("one of -up or -down must be given")
	}
	for _, f := range []struct{ name, value string }{
		{"-cluster", *clusterFlag},
		{"-service", *serviceFlag},
		{"-pool", *poolFlag},
		{"-tasks", *tasksFlag},
	} {
		if f.value == "" {
			c.Fatalf("missing %s", f.name)
		}
	}
	// Validate the delta before any control-plane call is made.
	if _, err := ecsscale.ParseDelta(*tasksFlag); err != nil {
		c.Fatal(err)
	}
	cluster := c.cluster(*clusterFlag)
	pool := c.pool(*poolFlag)
	c.must(c.runScale(ctx, cluster, pool, *serviceFlag, *poolFlag, dir.dir, *tasksFlag, *dryRunFlag))
}

// runScale performs the scaling sequence: read the service's task
// count, move it by the delta, then derive and apply new pool
// bounds from the cluster's total task count. Outside of dry-run the
// cluster count is read after the service update so that the pool
// sees post-update demand; in dry-run mode Plan projects the count
// forward instead.
func (c *Cmd) runScale(ctx context.Context, cluster taskService, pool workerPool, service, poolName string, dir ecsscale.Direction, delta string, dryRun bool) error {
	current, err := cluster.ServiceTasks(ctx, service)
	if err != nil {
		return err
	}
	d, err := ecsscale.ParseDelta(delta)
	if err != nil {
		return err
	}
	if !dryRun {
		if err := cluster.SetServiceTasks(ctx, service, d.Apply(current, dir)); err != nil {
			return err
		}
	}
	tasks, err := cluster.Tasks(ctx)
	if err != nil {
		return err
	}
	bounds, err := pool.Bounds(ctx)
	if err != nil {
		return err
	}
	out, err := ecsscale.Plan(ecsscale.Request{
		Direction:    dir,
		Delta:        delta,
		DryRun:       dryRun,
		ServiceTasks: current,
		ClusterTasks: tasks,
		Bounds:       bounds,
	})
	if err != nil {
		return err
	}
	if !dryRun && !out.Skipped {
		if err := pool.SetBounds(ctx, out.Bounds); err != nil {
			return err
		}
	}
	c.report(service, poolName, dir, current, bounds, out, dryRun)
	return nil
}

// report renders the outcome of a scaling operation, echoing the
// resolved delta and the old and new values of every field. A
// skipped pool adjustment is reported as such rather than as a no-op
// set of bounds.
func (c *Cmd) report(service, poolName string, dir ecsscale.Direction, current int, bounds ecsscale.Bounds, out ecsscale.Outcome, dryRun bool) {
	mode := ""
	if dryRun {
		mode = " (dry run)"
	}
	c.Printf("scale %s service %s by %s%s\n", dir, service, out.Delta, mode)
	var tw tabwriter.Writer
	tw.Init(c.Stdout, 4, 4, 1, ' ', 0)
	fmt.Fprintf(&tw, "\tcurrent\tnew\n")
	fmt.Fprintf(&tw, "service tasks\t%d\t%d\n", current, out.ServiceTasks)
	if out.Skipped {
		fmt.Fprintf(&tw, "pool %s\t%s\t(no adjustment needed)\n", poolName, bounds)
	} else {
		fmt.Fprintf(&tw, "pool min\t%d\t%d\n", bounds.Min, out.Bounds.Min)
		fmt.Fprintf(&tw, "pool max\t%d\t%d\n", bounds.Max, out.Bounds.Max)
		fmt.Fprintf(&tw, "pool desired\t%d\t%d\n", bounds.Desired, out.Bounds.Desired)
	}
	tw.Flush()
}
