package core

type Conf struct {
	Version              string `long:"version" description:"version of the experiment engine" env:"QAOA_ENGINE_VERSION"`
	DevMode              bool   `long:"dev-mode" description:"run in dev mode" env:"QAOA_ENGINE_DEV_MODE"`
	DisableStdoutLog     bool   `long:"disable-stdout-log" description:"do not log in standard output" env:"QAOA_ENGINE_DISABLE_STDOUT_LOG"`
	EnableFileLog        bool   `long:"enable-file-log" description:"enable log in file" env:"QAOA_ENGINE_ENABLE_FILE_LOG"`
	LogDir               string `long:"log-dir" description:"rotating log file dir" default:"./shares/logs" env:"QAOA_ENGINE_LOG_DIR"`
	LogLevel             string `long:"log-level" description:"log level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"QAOA_ENGINE_LOG_LEVEL"`
	LogRotationMaxDays   int    `long:"log-rotation-max-days" description:"max days of log rotation" default:"7" env:"QAOA_ENGINE_LOG_ROTATION_MAX_DAYS"`
	MetricsLogDir        string `long:"metrics-log-dir" description:"daily metrics log dir" default:"./shares/logs" env:"QAOA_ENGINE_METRICS_LOG_DIR"`
	QueueMaxSize         int    `long:"queue-max-size" description:"task queue max size" default:"10000" env:"QAOA_ENGINE_QUEUE_MAX_SIZE"`
	QueueRefillThreshold int    `long:"queue-refill-threshold" description:"task queue refill threshold" default:"10" env:"QAOA_ENGINE_QUEUE_REFILL_THRESHOLD"`
	NumWorkers           int    `long:"num-workers" description:"worker count of the task executor" default:"2" env:"QAOA_ENGINE_NUM_WORKERS"`
	DatasetID            string `long:"dataset-id" description:"dataset partition key for persisted results. auto-generated when empty" env:"QAOA_ENGINE_DATASET_ID"`
	ResultsDir           string `long:"results-dir" description:"base dir of the filesystem result store" default:"./shares/results" env:"QAOA_ENGINE_RESULTS_DIR"`
	DeviceSettingPath    string `long:"device-setting-path" description:"device setting file path. built-in devices are used when empty" env:"QAOA_ENGINE_DEVICE_SETTING_PATH"`
	SettingPath          string `long:"setting-path" description:"setting file path" default:"./setting/setting.toml" env:"QAOA_ENGINE_SETTING_PATH"`
}
