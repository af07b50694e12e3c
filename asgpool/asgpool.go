// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package asgpool implements the worker-pool collaborator for
// ecsscale on top of EC2 auto scaling groups. A pool's bounds are
// the group's minimum, maximum, and desired capacities.
package asgpool

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/autoscaling"
	"github.com/aws/aws-sdk-go/service/autoscaling/autoscalingiface"
	"github.com/grailbio/ecsscale"
	"github.com/grailbio/ecsscale/errors"
	"github.com/grailbio/ecsscale/log"
)

// A Pool provides access to one auto scaling group's capacity
// configuration.
type Pool struct {
	// API is the auto scaling API instance through which calls are
	// made.
	API autoscalingiface.AutoScalingAPI
	// Name is the name of the auto scaling group.
	Name string
	// Log receives debug logging for control-plane calls.
	Log *log.Logger
}

// Bounds returns the pool's current capacity configuration. Bounds
// returns a NotExist error when no group with the pool's name can be
// resolved.
func (p *Pool) Bounds(ctx context.Context) (ecsscale.Bounds, error) {
	p.Log.Debugf("describe group %s", p.Name)
	resp, err := p.API.DescribeAutoScalingGroupsWithContext(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: []*string{aws.String(p.Name)},
	})
	if err != nil {
		return ecsscale.Bounds{}, errors.E("describe group", p.Name, err)
	}
	if len(resp.AutoScalingGroups) == 0 {
		return ecsscale.Bounds{}, errors.E("describe group", p.Name, errors.NotExist)
	}
	group := resp.AutoScalingGroups[0]
	return ecsscale.Bounds{
		Min:     int(aws.Int64Value(group.MinSize)),
		Max:     int(aws.Int64Value(group.MaxSize)),
		Desired: int(aws.Int64Value(group.DesiredCapacity)),
	}, nil
}

// SetBounds requests that the pool's capacity configuration be
// updated to b.
func (p *Pool) SetBounds(ctx context.Context, b ecsscale.Bounds) error {
	p.Log.Debugf("update group %s %s", p.Name, b)
	_, err := p.API.UpdateAutoScalingGroupWithContext(ctx, &autoscaling.UpdateAutoScalingGroupInput{
		AutoScalingGroupName: aws.String(p.Name),
		MinSize:              aws.Int64(int64(b.Min)),
		MaxSize:              aws.Int64(int64(b.Max)),
		DesiredCapacity:      aws.Int64(int64(b.Desired)),
	})
	if err != nil {
		return errors.E("update group", p.Name, err)
	}
	return nil
}
