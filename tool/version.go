// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tool

import (
	"context"
	"flag"
	"fmt"
	"runtime"
)

func (c *Cmd) version(ctx context.Context, args ...string) {
	var (
		flags = flag.NewFlagSet("version", flag.ExitOnError)
		help  = "Version displays this binary's version and the Go version it was built with."
	)
	c.Parse(flags, args, help, "version")
	if len(args) != 0 {
		flags.Usage()
	}
	if c.Version == "" {
		c.Version = "broken"
	}
	fmt.Printf("%s (%s)\n", c.Version, runtime.Version())
}
