package utils

import (
	"fmt"
)

const (
	Version = "0.3.0"
)

// VersionString is displayed by the command line tool.
var VersionString = fmt.Sprintf("Go-WebStyle %s", Version)
