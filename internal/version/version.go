package version

// Version is the current release, overridable at build time via
// -ldflags "-X github.com/geoknoesis/rdfany/internal/version.Version=...".
var Version = "0.1.0"
