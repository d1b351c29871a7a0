// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package history records past gateway executions.

A [Log] is owned by a single client and grows for the client's lifetime. It
is append-only and never pruned; bounded retention is left to the caller,
who can copy entries out with [Log.All].

	log := history.NewLog()
	log.Append(entry)

	last, ok := log.Last()
*/
package history
