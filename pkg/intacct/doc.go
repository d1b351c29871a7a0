// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package intacct provides the main client for the accounting XML gateway.

# Client Creation

Constructing a client always performs one session bootstrap exchange, with
either login credentials or an existing session id:

	client, err := intacct.NewClient(ctx, &intacct.ClientConfig{
	    SenderID:       "senderid",
	    SenderPassword: "senderpass",
	    CompanyID:      "company",
	    UserID:         "user",
	    UserPassword:   "password",
	})

A client whose bootstrap failed is never returned.

# Executing Operations

Operations are batched into one envelope and results come back in the same
order:

	results, err := client.Execute(ctx,
	    message.NewOperation("create", content.NewRecord("CLASS", "CLASSID", "UT01")),
	    message.NewOperation("readByQuery", content.Params(...)),
	)

err is non-nil only for envelope level problems: transport, control,
authentication and correlation failures, or invalid input caught before
anything is sent. A failed operation is returned as a [message.Result] whose
Err method describes the failure; the other results in the batch are
unaffected.

An authentication failure purges the cached session. The client does not
re-authenticate; later calls fail with [session.ErrNotAuthenticated].

# Concurrency

A client sends one request at a time. Concurrent calls are serialized.

# History

Every exchange, including the bootstrap, is appended to the client's
history, available through [Client.History] and [Client.LastExecution].
*/
package intacct
