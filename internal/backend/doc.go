// Package backend talks to the content backend that knows which remote
// assets exist. The protocol is a single query operation returning an
// ordered sequence of opaque JSON records; everything else about the
// backend (schema, auth, pagination) is its own business.
package backend
