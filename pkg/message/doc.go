// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package message builds gateway request envelopes and parses gateway responses.

# Request Envelope

A request carries a control block, one authentication block and an ordered
list of operations:

	<request>
	  <control>
	    <senderid/><password/><controlid/><uniqueid/><dtdversion>3.0</dtdversion>
	  </control>
	  <operation transaction="false">
	    <authentication><sessionid/></authentication>
	    <content>
	      <function controlid="create"><create><CLASS>...</CLASS></create></function>
	    </content>
	  </operation>
	</request>

Use the builder to assemble one:

	req, err := message.NewRequest(
	    message.WithSender("senderid", "senderpass"),
	    message.WithSession(sessionID),
	    message.WithOperation(message.NewOperation("create", rec1, rec2)),
	).Build()

	body, err := req.Bytes()

Operation order in the envelope is the caller's order. Operation control ids
must be unique within one request; empty ones are filled with random UUIDs.

# Response Parsing

[ParseResponse] decodes a response envelope. A control status other than
"success" yields a [ControlFailure]; a missing or failed authentication block
yields an [AuthenticationFailure]. Results are returned in document order and
[Response.Correlate] checks them positionally against the request.

A result whose status is "failure" is not an error at the envelope level: its
error list is available on the [Result] and [Result.Err] returns it as a
value so sibling results in the same envelope remain usable.
*/
package message
