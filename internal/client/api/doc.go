// Package api is the single choke point for all communication with the
// rate-my-setup server. Every server operation is a thin wrapper over one
// request helper that attaches the bearer token, speaks JSON both ways, and
// normalizes every failure (transport errors, non-2xx statuses, malformed
// bodies) into an ordinary error whose message is fit for direct display.
// Nothing panics past this boundary and callers never need to distinguish
// the failure cause.
package api
