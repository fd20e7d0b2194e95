/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package main

import (
	"lxcharset/cmd"
)

func main() {
	cmd.Execute()
}

// go build -ldflags="-s -w -X 'lxcharset/internal/version.Version=v1.0.0' -X 'lxcharset/internal/version.Commit=$(git rev-parse HEAD)' -X 'lxcharset/internal/version.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)'" -o bin/lxcharset
