// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ecsscale

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/ecsscale/errors"
)

// Kind denotes how a delta's magnitude is interpreted.
type Kind int

const (
	// Count interprets the magnitude as an absolute number of tasks.
	Count Kind = iota
	// Percent interprets the magnitude as a percentage of the
	// current task count.
	Percent
)

// String renders a human-readable description of kind k.
func (k Kind) String() string {
	switch k {
	case Count:
		return "tasks"
	case Percent:
		return "percent"
	default:
		return "unknown"
	}
}

// A Delta is an operator-requested scaling amount, either an
// absolute task count or a percentage of the current count. Deltas
// are parsed once per invocation and immutable thereafter.
type Delta struct {
	// Magnitude is the delta's amount. It is always non-negative;
	// scaling direction is carried separately.
	Magnitude int
	// Kind determines how Magnitude is applied.
	Kind Kind
}

// String renders the delta the way an operator would write it.
func (d Delta) String() string {
	if d.Kind == Percent {
		return fmt.Sprintf("%d%%", d.Magnitude)
	}
	return strconv.Itoa(d.Magnitude)
}

// ParseDelta parses an operator-supplied delta expression: a
// non-negative decimal integer with an optional trailing "%" marking
// a percentage delta. Anything else (empty string, sign, fraction,
// stray characters) fails with an Invalid error.
func ParseDelta(s string) (Delta, error) {
	d := Delta{Kind: Count}
	num := s
	if strings.HasSuffix(num, "%") {
		d.Kind = Percent
		num = strings.TrimSuffix(num, "%")
	}
	if num == "" {
		return Delta{}, errors.E("parse delta", errors.Invalid, errors.New("empty delta"))
	}
	for _, r := range num {
		if r < '0' || r > '9' {
			return Delta{}, errors.E("parse delta", s, errors.Invalid)
		}
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return Delta{}, errors.E("parse delta", s, errors.Invalid, err)
	}
	d.Magnitude = n
	return d, nil
}

// change returns the number of tasks by which a count of current
// tasks moves under d. Percentage deltas round half up; a percentage
// of zero tasks always moves one task, since no fraction of zero
// could otherwise get a stopped service off the ground.
func (d Delta) change(current int) int {
	if d.Kind == Count {
		return d.Magnitude
	}
	if current == 0 {
		return 1
	}
	return (current*d.Magnitude + 50) / 100
}

// Apply returns the task count that results from moving current by d
// in the given direction. The result is clamped at zero: no negative
// task counts are ever produced.
func (d Delta) Apply(current int, dir Direction) int {
	n := d.change(current)
	if dir == Down {
		n = -n
	}
	if current += n; current < 0 {
		return 0
	}
	return current
}
