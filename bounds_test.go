// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ecsscale

import "testing"

func TestDesiredWorkers(t *testing.T) {
	for _, c := range []struct {
		tasks, want int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{5, 2},
		{10, 5},
		{11, 5},
	} {
		if got, want := desiredWorkers(c.tasks), c.want; got != want {
			t.Errorf("tasks %d: got %v, want %v", c.tasks, got, want)
		}
	}
}

func TestScaleUp(t *testing.T) {
	for _, c := range []struct {
		tasks       int
		bounds      Bounds
		want        Bounds
		wantSkipped bool
	}{
		// desiredWorkers(10)=5 raises min only.
		{10, Bounds{Min: 3, Max: 10, Desired: 5}, Bounds{Min: 5, Max: 10, Desired: 5}, false},
		// All three raised.
		{30, Bounds{Min: 3, Max: 10, Desired: 5}, Bounds{Min: 15, Max: 15, Desired: 15}, false},
		// Min not exceeded: skipped, other fields still evaluated.
		{6, Bounds{Min: 3, Max: 2, Desired: 1}, Bounds{Min: 3, Max: 3, Desired: 3}, true},
		{2, Bounds{Min: 3, Max: 10, Desired: 5}, Bounds{Min: 3, Max: 10, Desired: 5}, true},
	} {
		got, skipped := c.bounds.Scale(c.tasks, Up)
		if got != c.want || skipped != c.wantSkipped {
			t.Errorf("scale up %v for %d tasks: got %v/%v, want %v/%v",
				c.bounds, c.tasks, got, skipped, c.want, c.wantSkipped)
		}
	}
}

func TestScaleDown(t *testing.T) {
	for _, c := range []struct {
		tasks       int
		bounds      Bounds
		want        Bounds
		wantSkipped bool
	}{
		// desiredWorkers(4)=2 lowers everything.
		{4, Bounds{Min: 3, Max: 10, Desired: 5}, Bounds{Min: 2, Max: 2, Desired: 2}, false},
		// Equal min: skipped.
		{6, Bounds{Min: 3, Max: 10, Desired: 5}, Bounds{Min: 3, Max: 3, Desired: 3}, true},
		// Larger than current min: skipped, nothing moves.
		{20, Bounds{Min: 3, Max: 10, Desired: 5}, Bounds{Min: 3, Max: 10, Desired: 5}, true},
		// One task still needs one worker.
		{1, Bounds{Min: 3, Max: 10, Desired: 5}, Bounds{Min: 1, Max: 1, Desired: 1}, false},
	} {
		got, skipped := c.bounds.Scale(c.tasks, Down)
		if got != c.want || skipped != c.wantSkipped {
			t.Errorf("scale down %v for %d tasks: got %v/%v, want %v/%v",
				c.bounds, c.tasks, got, skipped, c.want, c.wantSkipped)
		}
	}
}

func TestScaleMonotone(t *testing.T) {
	bounds := Bounds{Min: 3, Max: 10, Desired: 5}
	for tasks := 0; tasks <= 40; tasks++ {
		up, _ := bounds.Scale(tasks, Up)
		if up.Min < bounds.Min || up.Max < bounds.Max || up.Desired < bounds.Desired {
			t.Errorf("scale up with %d tasks lowered a bound: %v -> %v", tasks, bounds, up)
		}
		down, _ := bounds.Scale(tasks, Down)
		if down.Min > bounds.Min || down.Max > bounds.Max || down.Desired > bounds.Desired {
			t.Errorf("scale down with %d tasks raised a bound: %v -> %v", tasks, bounds, down)
		}
	}
}

func TestScaleSkippedGovernedByMin(t *testing.T) {
	bounds := Bounds{Min: 3, Max: 10, Desired: 5}
	for tasks := 0; tasks <= 40; tasks++ {
		want := desiredWorkers(tasks)
		if _, skipped := bounds.Scale(tasks, Up); skipped != !(want > bounds.Min) {
			t.Errorf("scale up with %d tasks: skipped %v, min %d, want %d",
				tasks, skipped, bounds.Min, want)
		}
		if _, skipped := bounds.Scale(tasks, Down); skipped != !(want < bounds.Min) {
			t.Errorf("scale down with %d tasks: skipped %v, min %d, want %d",
				tasks, skipped, bounds.Min, want)
		}
	}
}
