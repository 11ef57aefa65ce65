package dbconnect

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionFile string

// Version is the current version of the dbconnect module.
var Version = strings.TrimSpace(versionFile)
