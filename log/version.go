package log

import (
	"github.com/qopt-team/qaoa-engine/core"
	"go.uber.org/zap"
)

func LogVersion() {
	zap.L().Debug("Engine version:" + core.Version)
}
