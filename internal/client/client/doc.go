// Package client talks to the time-tracking REST API.
//
// # Overview
//
// The package provides:
//  1. Transport, the minimal contract for one authenticated request
//     (endpoint, method, JSON payload, query params) returning the raw JSON
//     body, and HTTPTransport, its net/http implementation.
//  2. Client, the typed endpoint surface (current user, job codes, custom
//     fields, timesheets, reports), and APIClient, which implements it on
//     top of any Transport by decoding the service's
//     {"results": {"<kind>": {"<id>": record}}, "more": bool} envelopes.
//
// # Error Handling
//
// Non-200 responses surface as *TransportError (errors.Is ErrTransport);
// network failures wrap ErrUnavailable; bodies of the wrong shape surface as
// *DecodeError (errors.Is ErrDecode). Nothing is retried.
//
// Concurrency & Contexts
//
// Every call takes a context.Context bounding the request. APIClient holds
// no mutable state; HTTPTransport is safe for concurrent use.
package client
