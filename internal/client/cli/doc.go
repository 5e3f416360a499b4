// Package cli is the tsheets command line: a cobra command tree over the
// timesheet, totals, reference and auth services, plus an interactive shell
// that runs the same commands against one shared App.
//
// Commands that talk to the API are wrapped in App.withClient, which loads
// the token and builds the services on first use. Reference data (user, job
// codes, custom fields) is cached for the life of the process, so a shell
// session fetches it once.
package cli
