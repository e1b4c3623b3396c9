// Package build holds build-time metadata injected by the linker.
package build

// Version is the application version, overridden at link time.
var Version = "dev"
