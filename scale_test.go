// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ecsscale

import (
	"testing"

	"github.com/grailbio/ecsscale/errors"
)

func TestPlan(t *testing.T) {
	out, err := Plan(Request{
		Direction:    Up,
		Delta:        "50%",
		ServiceTasks: 4,
		ClusterTasks: 10,
		Bounds:       Bounds{Min: 3, Max: 10, Desired: 5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.Delta, (Delta{50, Percent}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := out.ServiceTasks, 6; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := out.Bounds, (Bounds{Min: 5, Max: 10, Desired: 5}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if out.Skipped {
		t.Error("adjustment skipped")
	}
}

func TestPlanDryRun(t *testing.T) {
	// The cluster count is projected forward under the delta before
	// bounds are derived: 8 - 2 = 6 tasks, so 3 workers.
	out, err := Plan(Request{
		Direction:    Down,
		Delta:        "2",
		DryRun:       true,
		ServiceTasks: 3,
		ClusterTasks: 8,
		Bounds:       Bounds{Min: 4, Max: 10, Desired: 5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.ServiceTasks, 1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := out.Bounds, (Bounds{Min: 3, Max: 3, Desired: 3}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if out.Skipped {
		t.Error("adjustment skipped")
	}
}

func TestPlanLiveUsesClusterCountAsIs(t *testing.T) {
	// Outside of dry-run the caller supplies a post-update count; no
	// projection is applied.
	out, err := Plan(Request{
		Direction:    Down,
		Delta:        "2",
		ServiceTasks: 3,
		ClusterTasks: 6,
		Bounds:       Bounds{Min: 4, Max: 10, Desired: 5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.Bounds, (Bounds{Min: 3, Max: 3, Desired: 3}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlanInvalidDelta(t *testing.T) {
	_, err := Plan(Request{Direction: Up, Delta: "ten"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Match(errors.Invalid, err) {
		t.Errorf("expected Invalid, got %v", err)
	}
}
