// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tool

import (
	"github.com/aws/aws-sdk-go/service/autoscaling"
	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/grailbio/ecsscale/asgpool"
	"github.com/grailbio/ecsscale/ecscluster"
)

// cluster returns the ECS collaborator for the named cluster.
// Session construction errors are fatal.
func (c *Cmd) cluster(name string) *ecscluster.Cluster {
	sess, err := c.Config.AWS()
	if err != nil {
		c.Fatal(err)
	}
	return &ecscluster.Cluster{
		ECS:  ecs.New(sess),
		Name: name,
		Log:  c.Log.Tee(nil, "ecs: "),
	}
}

// pool returns the worker pool collaborator for the named auto
// scaling group.
func (c *Cmd) pool(name string) *asgpool.Pool {
	sess, err := c.Config.AWS()
	if err != nil {
		c.Fatal(err)
	}
	return &asgpool.Pool{
		API:  autoscaling.New(sess),
		Name: name,
		Log:  c.Log.Tee(nil, "asg: "),
	}
}
