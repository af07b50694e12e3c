// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tool

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"
)

func (c *Cmd) status(ctx context.Context, args ...string) {
	flags := flag.NewFlagSet("status", flag.ExitOnError)
	help := `Status displays the current task counts of a service and its
cluster, and the bounds of the worker pool backing the cluster. It
issues no updates.`
	var (
		clusterFlag = flags.String("cluster", "", "ECS cluster name")
		serviceFlag = flags.String("service", "", "ECS service name")
		poolFlag    = flags.String("pool", "", "name of the auto scaling group backing the cluster")
	)
	c.Parse(flags, args, help, "status -cluster cluster -service service -pool pool")
	if flags.NArg() != 0 {
		flags.Usage()
	}
	for _, f := range []struct{ name, value string }{
		{"-cluster", *clusterFlag},
		{"-service", *serviceFlag},
		{"-pool", *poolFlag},
	} {
		if f.value == "" {
			c.Fatalf("missing %s", f.name)
		}
	}
	cluster := c.cluster(*clusterFlag)
	pool := c.pool(*poolFlag)
	c.must(c.runStatus(ctx, cluster, pool, *serviceFlag, *poolFlag))
}

func (c *Cmd) runStatus(ctx context.Context, cluster taskService, pool workerPool, service, poolName string) error {
	serviceTasks, err := cluster.ServiceTasks(ctx, service)
	if err != nil {
		return err
	}
	clusterTasks, err := cluster.Tasks(ctx)
	if err != nil {
		return err
	}
	bounds, err := pool.Bounds(ctx)
	if err != nil {
		return err
	}
	var tw tabwriter.Writer
	tw.Init(c.Stdout, 4, 4, 1, ' ', 0)
	fmt.Fprintf(&tw, "service %s tasks\t%d\n", service, serviceTasks)
	fmt.Fprintf(&tw, "cluster tasks\t%d\n", clusterTasks)
	fmt.Fprintf(&tw, "pool %s\t%s\n", poolName, bounds)
	tw.Flush()
	return nil
}
