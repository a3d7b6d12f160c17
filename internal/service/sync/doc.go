// Package sync keeps a local staging directory in step with remote assets
// described by the content backend.
//
// On build start it queries the backend, maps each record to a file
// descriptor, and downloads every file whose local copy is missing or whose
// fingerprint no longer matches. On build end it removes the staging
// directory, but only if this run created it. One failing file never aborts
// the batch; a failing backend always does.
package sync
