// Package config defines synchronizer settings and provides helpers
// to load, validate and save them in YAML format.
//
// The Config type holds the opaque backend connection parameters, the
// query string and the staging directory location.
package config
