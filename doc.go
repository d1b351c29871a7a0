// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package gointacct is a client for the Sage Intacct XML Web Services gateway
(API 3.0).

# Overview

Every call to the gateway is a single XML request envelope carrying a
control block (sender credentials, control id, DTD version), an
authentication block (session id or company login) and one or more
function operations. The gateway answers with a response envelope holding
a control status, an authentication status and one result per operation.

This library builds those envelopes, posts them over HTTPS, parses the
response and correlates each result with the operation that produced it.
A session is bootstrapped with getAPISession when the client is created;
the session id and endpoint returned by the gateway are used for every
subsequent request.

# Package Structure

	github.com/sirosfoundation/go-intacct/pkg/intacct   - Client API and convenience operations
	github.com/sirosfoundation/go-intacct/pkg/content   - Records and field serialization
	github.com/sirosfoundation/go-intacct/pkg/message   - Request builder and response parser
	github.com/sirosfoundation/go-intacct/pkg/session   - Credentials and session bootstrap
	github.com/sirosfoundation/go-intacct/pkg/transport - HTTPS transport with TLS 1.2/1.3
	github.com/sirosfoundation/go-intacct/pkg/history   - Record of past exchanges

# Quick Start

	import (
	    "github.com/sirosfoundation/go-intacct/pkg/content"
	    "github.com/sirosfoundation/go-intacct/pkg/intacct"
	)

	client, err := intacct.NewClient(ctx, &intacct.ClientConfig{
	    SenderID:       "sender",
	    SenderPassword: "sender-password",
	    CompanyID:      "company",
	    UserID:         "user",
	    UserPassword:   "password",
	})
	if err != nil {
	    return err
	}

	result, err := client.Create(ctx,
	    content.NewRecord("CLASS", "CLASSID", "UT01", "NAME", "Unit Test 01"))
	if err != nil {
	    return err
	}
	if err := result.Err(); err != nil {
	    // the gateway rejected the operation
	}

# Errors

Envelope, transport, control, authentication and correlation failures are
returned as errors and match the sentinels in their packages with
errors.Is. Per-operation failures are not errors of the call: they are
returned as results with a failure status and their error details.

# References

  - Sage Intacct Web Services: https://developer.intacct.com/web-services/

# License

BSD-2-Clause License
*/
package gointacct
