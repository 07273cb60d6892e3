// internal/version/version.go
package version

// Version is injected at build time via -ldflags "-X hpigo/internal/version.Version=..."
var Version = "0.1.0-dev"
