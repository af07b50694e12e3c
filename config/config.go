// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package config defines the configuration for an ecsscale
// invocation. Configuration is a small YAML document; by default,
// AWS configuration is derived from the user's environment in
// accordance with the AWS SDK, but the region and static credentials
// may be pinned in the configuration file.
package config

import (
	"io/ioutil"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	yaml "gopkg.in/yaml.v2"
)

// Credentials are static AWS credentials pinned by a configuration
// file. Most configurations leave these unset and let the SDK derive
// credentials from the environment.
type Credentials struct {
	AccessKeyID     string `yaml:"accesskeyid"`
	SecretAccessKey string `yaml:"secretaccesskey"`
	SessionToken    string `yaml:"sessiontoken,omitempty"`
}

// A Config provides the AWS session used by an ecsscale invocation.
// The zero Config is valid and derives everything from the user's
// environment.
type Config struct {
	// Region is the AWS region in which API calls are made. If
	// empty, the region is taken from the environment.
	Region string `yaml:"region,omitempty"`
	// Credentials, if non-nil, pins static AWS credentials.
	Credentials *Credentials `yaml:"credentials,omitempty"`

	once    sync.Once
	session *session.Session
	err     error
}

// Load reads and parses the configuration file at the provided path.
// A missing file is reported with an os.IsNotExist error; callers
// that treat the default path as optional should check for it.
func Load(path string) (*Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := new(Config)
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AWS returns the AWS session minted from this configuration. The
// session is constructed once and reused across calls.
func (c *Config) AWS() (*session.Session, error) {
	c.once.Do(func() {
		awscfg := &aws.Config{}
		if c.Region != "" {
			awscfg.Region = aws.String(c.Region)
		}
		if c.Credentials != nil {
			awscfg.Credentials = credentials.NewStaticCredentials(
				c.Credentials.AccessKeyID,
				c.Credentials.SecretAccessKey,
				c.Credentials.SessionToken)
		}
		c.session, c.err = session.NewSessionWithOptions(session.Options{
			Config:            *awscfg,
			SharedConfigState: session.SharedConfigEnable,
		})
	})
	return c.session, c.err
}
