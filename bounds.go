// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ecsscale

import "fmt"

// Bounds describes a worker pool's capacity configuration: the
// minimum, maximum, and desired number of workers.
type Bounds struct {
	Min, Max, Desired int
}

// String renders the bounds in the form "min:1 max:10 desired:5".
func (b Bounds) String() string {
	return fmt.Sprintf("min:%d max:%d desired:%d", b.Min, b.Max, b.Desired)
}

// desiredWorkers returns the number of workers needed to host the
// given number of tasks. Each worker is provisioned for two tasks'
// worth of capacity; a cluster running exactly one task still needs
// one worker (integer division would otherwise yield zero).
func desiredWorkers(tasks int) int {
	if tasks == 1 {
		return 1
	}
	return tasks / 2
}

// Scale returns the bounds adjusted for a cluster running the given
// total number of tasks. Each of the three fields moves
// independently and only in the scaling direction: scaling up never
// lowers a bound, scaling down never raises one. The returned flag
// reports that the minimum bound did not move; callers use it to
// suppress the pool update entirely.
func (b Bounds) Scale(tasks int, dir Direction) (Bounds, bool) {
	want := desiredWorkers(tasks)
	next := b
	var skipped bool
	if dir == Up {
		if want > b.Min {
			next.Min = want
		} else {
			skipped = true
		}
		if want > b.Max {
			next.Max = want
		}
		if want > b.Desired {
			next.Desired = want
		}
		return next, skipped
	}
	if want < b.Min {
		next.Min = want
	} else {
		skipped = true
	}
	if want < b.Max {
		next.Max = want
	}
	if want < b.Desired {
		next.Desired = want
	}
	return next, skipped
}
