// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/grailbio/ecsscale/tool"
)

// version is set at build time with -ldflags.
var version = "unreleased"

var configFile = os.ExpandEnv("$HOME/.ecsscale/config.yaml")

func main() {
	cmd := &tool.Cmd{
		DefaultConfigFile: configFile,
		Version:           version,
	}
	cmd.Flags().Parse(os.Args[1:])
	cmd.Main()
}
