// Package common contains shared constants and sentinel errors used across
// the tsheets client components.
package common

// ServiceName names the per-user configuration directory
// (~/.config/<ServiceName>) and prefixes environment variables.
const ServiceName = "tsheets"

// DefaultAPIBase is the root of the remote REST API.
const DefaultAPIBase = "https://rest.tsheets.com/api/v1"

// RequestIDHeaderName is the HTTP header carrying the per-request id that
// also appears in debug logs.
const RequestIDHeaderName = "X-Request-Id"

// TimesheetTypeRegular is the only timesheet type this client creates.
const TimesheetTypeRegular = "regular"
