// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package ecscluster implements the ECS control-plane collaborator
// for ecsscale: reading and updating the task counts of a service
// and reading the total task count of its cluster. The package
// performs no scaling arithmetic of its own.
package ecscluster

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/aws/aws-sdk-go/service/ecs/ecsiface"
	"github.com/grailbio/ecsscale/errors"
	"github.com/grailbio/ecsscale/log"
)

// A Cluster provides access to one ECS cluster's services and tasks.
type Cluster struct {
	// ECS is the ECS API instance through which calls are made.
	ECS ecsiface.ECSAPI
	// Name is the name (or ARN) of the cluster.
	Name string
	// Log receives debug logging for control-plane calls.
	Log *log.Logger
}

// ServiceTasks returns the number of tasks currently running for the
// named service.
func (c *Cluster) ServiceTasks(ctx context.Context, service string) (int, error) {
	c.Log.Debugf("describe service %s", service)
	resp, err := c.ECS.DescribeServicesWithContext(ctx, &ecs.DescribeServicesInput{
		Cluster:  aws.String(c.Name),
		Services: []*string{aws.String(service)},
	})
	if err != nil {
		return 0, errors.E("describe service", service, err)
	}
	if len(resp.Services) == 0 {
		return 0, errors.E("describe service", service, errors.NotExist)
	}
	return int(aws.Int64Value(resp.Services[0].RunningCount)), nil
}

// SetServiceTasks requests that the named service's desired task
// count be set to n.
func (c *Cluster) SetServiceTasks(ctx context.Context, service string, n int) error {
	c.Log.Debugf("update service %s desired count %d", service, n)
	_, err := c.ECS.UpdateServiceWithContext(ctx, &ecs.UpdateServiceInput{
		Cluster:      aws.String(c.Name),
		Service:      aws.String(service),
		DesiredCount: aws.Int64(int64(n)),
	})
	if err != nil {
		return errors.E("update service", service, err)
	}
	return nil
}

// Tasks returns the total number of tasks currently running across
// the whole cluster.
func (c *Cluster) Tasks(ctx context.Context) (int, error) {
	c.Log.Debugf("list tasks in cluster %s", c.Name)
	req := &ecs.ListTasksInput{
		Cluster:       aws.String(c.Name),
		DesiredStatus: aws.String(ecs.DesiredStatusRunning),
	}
	var n int
	for req != nil {
		resp, err := c.ECS.ListTasksWithContext(ctx, req)
		if err != nil {
			return 0, errors.E("list tasks", c.Name, err)
		}
		n += len(resp.TaskArns)
		if resp.NextToken != nil {
			req.NextToken = resp.NextToken
		} else {
			req = nil
		}
	}
	return n, nil
}
