// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package content serializes gateway records into XML fragments.

Records are opaque to the rest of the library: an object name plus an
ordered set of fields. The package never inspects field semantics, it only
guarantees that the emitted XML keeps the caller's field order and that every
object and field name is a valid XML element name.

# Records

	rec := content.NewRecord("CLASS",
	    "CLASSID", "UT01",
	    "NAME", "Unit Test 01",
	)

Written under a function element, the record produces:

	<CLASS><CLASSID>UT01</CLASSID><NAME>Unit Test 01</NAME></CLASS>

# Parameters

Functions such as readByQuery take bare parameters rather than records.
[Params] writes its fields directly under the parent element:

	content.Params(content.NewFields("object", "CLASS", "query", "", "pagesize", "100"))

# Custom Content

Domain types outside this package implement [Writer] to produce their own
content items.
*/
package content
