// Package query turns loosely-typed parameter lists into URL query strings.
//
// # Overview
//
// A [Params] value is an ordered list of key/value pairs. Values may be nil,
// nil pointers (an unset option), empty strings, numbers, strings or booleans.
// [Encode] filters the list with a [Rule] and percent-encodes what remains:
//
//	q := query.Encode(query.Params{
//	    {Key: "category", Value: "food"},
//	    {Key: "page", Value: 0},
//	}, query.OmitFalsy)
//	// q == "category=food"
//
// # Rules
//
// Two retention rules exist because the remote API is called with two
// different conventions:
//
//   - [OmitEmpty]: drop nil, unset pointers and "". Zero and false are sent.
//     Used by listing and export endpoints.
//   - [OmitFalsy]: drop every falsy value (nil, "", 0, NaN, false). Used by
//     analytics endpoints and the deleted-expense listing.
//
// # Output
//
// Keys keep their insertion order. The encoded string never carries a
// leading "?"; use [Join] to attach it to a path.
//
// No validation of types, ranges or enum membership happens here. Whatever
// the caller supplies is forwarded and the server decides.
package query
