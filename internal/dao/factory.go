// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package dao

import (
	"log/slog"
	"sync"

	"github.com/a1s/gridview/internal/aws"
)

// Factory provides the AWS connection used by S3 row sources and stores.
type Factory interface {
	// Client returns the AWS connection or nil when none can be made.
	Client() aws.Connection

	// Profile returns the active AWS profile.
	Profile() string

	// Region returns the active AWS region.
	Region() string
}

// ConnectFunc opens an AWS connection.
type ConnectFunc func() (aws.Connection, error)

// AWSFactory implements the Factory interface. The connection is opened on
// first use so local sources never touch AWS.
type AWSFactory struct {
	connect ConnectFunc
	client  aws.Connection
	err     error
	once    sync.Once
	log     *slog.Logger
}

// NewFactory creates a new AWSFactory with the given connector.
func NewFactory(connect ConnectFunc, log *slog.Logger) *AWSFactory {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &AWSFactory{
		connect: connect,
		log:     log.With("component", "factory"),
	}
}

// NewFactoryWith creates a factory around an existing connection.
func NewFactoryWith(client aws.Connection) *AWSFactory {
	return NewFactory(func() (aws.Connection, error) {
		if client == nil {
			return nil, aws.ErrNoConnection
		}
		return client, nil
	}, nil)
}

// Client returns the AWS connection.
func (f *AWSFactory) Client() aws.Connection {
	f.once.Do(func() {
		if f.connect == nil {
			f.err = aws.ErrNoConnection
			return
		}
		f.client, f.err = f.connect()
		if f.err != nil {
			f.log.Warn("AWS connection failed", "error", f.err)
			return
		}
		f.log.Info("AWS connection ready",
			"profile", f.client.ActiveProfile(),
			"region", f.client.ActiveRegion(),
			"account", f.client.AccountID(),
		)
	})
	if f.err != nil {
		return nil
	}
	return f.client
}

// Err returns the connection error, if any.
func (f *AWSFactory) Err() error {
	f.Client()
	return f.err
}

// Profile returns the current AWS profile.
func (f *AWSFactory) Profile() string {
	if c := f.Client(); c != nil {
		return c.ActiveProfile()
	}
	return ""
}

// Region returns the current AWS region.
func (f *AWSFactory) Region() string {
	if c := f.Client(); c != nil {
		return c.ActiveRegion()
	}
	return ""
}
