package types

// Version is the application version, overridden at build time via ldflags
var Version = "0.1.0"
