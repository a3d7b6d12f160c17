// Package version exposes build metadata for the project.
//
// Version, Commit and BuildTime are stamped at build time via Go ldflags and
// default to placeholder values for local builds. Short and Full render them
// for CLI output and logs.
package version
