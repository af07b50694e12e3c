// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package ecsscale implements the scaling decision logic of the
// ecsscale command: interpreting operator-supplied deltas, computing
// new service task counts, and adjusting the bounds of the worker
// pool backing a cluster. The package is a pure computation over a
// snapshot of control-plane state; talking to the control planes is
// the business of packages ecscluster and asgpool.
package ecsscale

// Direction determines whether a scaling operation adds or removes
// capacity. It is fixed once per invocation from the operator's
// request.
type Direction int

const (
	// Up adds capacity.
	Up Direction = iota
	// Down removes capacity.
	Down
)

// String renders the direction as "up" or "down".
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// A Request is a snapshot of the inputs to one scaling decision.
// All fields are read once from the control planes at the start of a
// run; Requests are never shared across runs.
type Request struct {
	// Direction is the operator-requested scaling direction.
	Direction Direction
	// Delta is the raw operator-supplied delta expression.
	Delta string
	// DryRun indicates that no control-plane update has been (or
	// will be) issued for this request.
	DryRun bool
	// ServiceTasks is the number of tasks currently running for the
	// target service.
	ServiceTasks int
	// ClusterTasks is the total number of tasks running across the
	// whole cluster. When DryRun is false, it must have been read
	// after the service update took effect.
	ClusterTasks int
	// Bounds is the worker pool's current configuration.
	Bounds Bounds
}

// An Outcome is the computed result of a scaling decision, consumed
// by the reporting layer.
type Outcome struct {
	// Delta is the typed delta resolved from the request's raw
	// expression.
	Delta Delta
	// ServiceTasks is the new task count for the target service.
	ServiceTasks int
	// Bounds is the new configuration for the worker pool.
	Bounds Bounds
	// Skipped indicates that the pool's minimum bound did not
	// warrant adjustment, and so no pool update should be issued.
	Skipped bool
}

// Plan computes the outcome of a scaling request. In dry-run mode
// the cluster task count is first projected forward under the same
// delta, since the real count will not change; otherwise the
// caller's post-update cluster task count is used as-is. Plan fails
// only when the request's delta expression is invalid.
func Plan(req Request) (Outcome, error) {
	delta, err := ParseDelta(req.Delta)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Delta: delta}
	out.ServiceTasks = delta.Apply(req.ServiceTasks, req.Direction)
	tasks := req.ClusterTasks
	if req.DryRun {
		tasks = delta.Apply(tasks, req.Direction)
	}
	out.Bounds, out.Skipped = req.Bounds.Scale(tasks, req.Direction)
	return out, nil
}
