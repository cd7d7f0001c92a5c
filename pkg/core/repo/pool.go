// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo lists the repository interfaces which are required by
// the use cases layer. Adapters reify them for a concrete database
// driver, while use cases only see the Pool, Conn, and Tx abstractions
// in addition to the per-table repositories.
package repo

import "context"

// ConnHandler is a callback which receives an open connection. The
// connection is released after the handler returns, so it must not
// be retained.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool.
type Pool interface {
	// Conn acquires one connection and passes it to the handler.
	// Calls to Conn must not be nested because a single-connection
	// pool (like the SQLite one) would block forever.
	Conn(ctx context.Context, handler ConnHandler) error

	// Close releases all pooled connections.
	Close() error
}
