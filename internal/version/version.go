// internal/version/version.go
package version

// Version is stamped at release; overridable via -ldflags "-X ldmat/internal/version.Version=...".
var Version = "0.3.0"
