// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package session bootstraps and caches the gateway session.

Every client performs exactly one bootstrap exchange before any business
operation: a getAPISession call under the reserved control id
"sessionProvider". With login credentials the call authenticates through a
<login> block; with an existing session id it authenticates with that id. In
both cases the session id and endpoint returned by the gateway become the
cached [Config], so the server response is authoritative.

# States

	Unauthenticated --Bootstrap ok--> Authenticated(Config)
	Authenticated   --Invalidate----> Unauthenticated

The manager never re-authenticates on its own. After an authentication
failure the cached config is purged and a new client must be constructed.
*/
package session
