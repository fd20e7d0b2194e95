/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

// Package version holds build-time identity information, injected via
// -ldflags at release build time (see main.go's build comment).
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// GetAbout renders a short human-readable identity block for the "about"
// command.
func GetAbout() string {
	return fmt.Sprintf("lxcharset %s\ncommit: %s\nbuilt: %s", Version, Commit, BuildDate)
}
