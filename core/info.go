package core

type NonSecretConf struct {
	DevMode              bool
	DisableStdoutLog     bool
	EnableFileLog        bool
	LogDir               string
	LogLevel             string
	LogRotationMaxDays   int
	QueueMaxSize         int
	QueueRefillThreshold int
	NumWorkers           int
	DatasetID            string
	ResultsDir           string
	DeviceSettingPath    string
}

type Info struct {
	Conf *NonSecretConf
}

var CurrentInfo *Info

func SetInfo(c *Conf) {
	conf := &NonSecretConf{
		DevMode:              c.DevMode,
		DisableStdoutLog:     c.DisableStdoutLog,
		EnableFileLog:        c.EnableFileLog,
		LogDir:               c.LogDir,
		LogLevel:             c.LogLevel,
		LogRotationMaxDays:   c.LogRotationMaxDays,
		QueueMaxSize:         c.QueueMaxSize,
		QueueRefillThreshold: c.QueueRefillThreshold,
		NumWorkers:           c.NumWorkers,
		DatasetID:            c.DatasetID,
		ResultsDir:           c.ResultsDir,
		DeviceSettingPath:    c.DeviceSettingPath,
	}

	CurrentInfo = &Info{
		Conf: conf,
	}
}
