// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transport sends serialized gateway envelopes over HTTPS.

The rest of the library depends only on the [Sender] interface, so tests and
callers with their own HTTP stack can substitute an implementation.

# HTTP Client

	client := transport.NewHTTPClient(transport.DefaultHTTPConfig())

	status, body, err := client.Send(ctx, endpoint, envelope)

Requests are POSTed with Content-Type "application/xml; charset=utf-8".
Connection failures, timeouts and non-2xx statuses whose body is not a
gateway response envelope fail with an [*Error] matching [ErrTransport]. A
non-2xx status that still carries a <response> envelope is returned without
error so the envelope's own status can be inspected.

# TLS Configuration

TLS 1.2 is the minimum version; client certificates and private root CAs can
be supplied through [HTTPConfig].

# Testing

[MockSender] replays canned responses in order and records every request:

	mock := transport.NewMockSender(transport.MockResponse{StatusCode: 200, Body: xml})
	// ... exercise the client ...
	last, _ := mock.LastRequest()
*/
package transport
