package core

import (
	"fmt"

	"go.uber.org/zap"
)

// Version of the running engine. Resolved once at startup; a value
// injected through -ldflags wins over the configured one.
var Version string

const NoVersion = "no_version_info"

func SetVersion(c *Conf, versionByBuildFlag string) {
	switch {
	case versionByBuildFlag != "":
		Version = versionByBuildFlag
	case c.Version != "":
		Version = c.Version
	default:
		Version = NoVersion
	}
	zap.L().Info(fmt.Sprintf("Version is %s", Version))
}
