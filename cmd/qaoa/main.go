package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	flags "github.com/jessevdk/go-flags"
	"github.com/massn/envordot"
	"github.com/oklog/run"

	"github.com/qopt-team/qaoa-engine/core"
	"github.com/qopt-team/qaoa-engine/device"
	"github.com/qopt-team/qaoa-engine/executor"
	"github.com/qopt-team/qaoa-engine/log"
	"github.com/qopt-team/qaoa-engine/pipeline"
	"github.com/qopt-team/qaoa-engine/runner"
	"github.com/qopt-team/qaoa-engine/store"

	"go.uber.org/dig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	rotate "github.com/lestrrat-go/file-rotatelogs"
)

var versionByBuildFlag string
var parser *flags.Parser
var engine *Engine

func init() {
	if err := envordot.Load(false, ".env"); err != nil {
		fmt.Printf("Not found \".env\" file. Use only environment variables. Reason:%s\n", err.Error())
	} else {
		fmt.Println("Found \".env\" file. Environment variables are preferred, " +
			"but non-conflicting variables are those in the \".env\" file.")
	}
	engine = &Engine{}
	setParser(engine)
}

type Engine struct {
	DIContainerParameters *DIContainerParameters
	Conf                  *core.Conf
}

type DIContainerParameters struct {
	Store     string `long:"store" description:"result store" default:"memory" choice:"memory" choice:"fs" env:"QAOA_ENGINE_STORE_TYPE"`
	Collector string `long:"collector" description:"data collector" default:"dummy" choice:"dummy" choice:"simulator" env:"QAOA_ENGINE_COLLECTOR_TYPE"`
}

func setParser(engine *Engine) {
	parser = flags.NewParser(engine, flags.Default)
	parser.ShortDescription = "qaoa engine"
	parser.LongDescription = "the task pipeline of the QAOA dataset collection system."
	parser.AddCommand("generate", "generate problems",
		"enumerate every problem family and generate the problem instances", newGenerateCmd())
	parser.AddCommand("precompute", "precompute angles",
		"precompute optimal angles for every generated problem at every depth", newPrecomputeCmd())
	parser.AddCommand("collect", "collect data",
		"collect device data at the precomputed angles", newCollectCmd())
	parser.AddCommand("landscape", "sweep a landscape grid",
		"collect data on a full (gamma, beta) angle grid of one problem instance", newLandscapeCmd())
	parser.AddCommand("run", "run the full pipeline",
		"generate, precompute and collect one whole dataset", newRunCmd())
}

func parse() {
	if _, err := parser.Parse(); err != nil {
		code := 1
		if fe, ok := err.(*flags.Error); ok {
			if fe.Type == flags.ErrHelp {
				code = 0
			}
		}
		if code == 1 {
			fmt.Printf("failed to parse flags, because %s\n", err)
		}
		os.Exit(code)
	}
}

func (e *Engine) provideDIContainer() (c *dig.Container, err error) {
	c = dig.New()
	err = nil
	err = c.Provide(func() core.ProblemGenerator { return &runner.DummyProblemGenerator{} })
	if err != nil {
		return &dig.Container{}, err
	}
	err = c.Provide(func() core.AnglePrecomputer { return &runner.DummyAnglePrecomputer{} })
	if err != nil {
		return &dig.Container{}, err
	}
	err = c.Provide(func() (core.DataCollector, error) {
		switch e.DIContainerParameters.Collector {
		case "dummy":
			return &runner.DummyDataCollector{}, nil
		case "simulator":
			return &runner.SimulatorDataCollector{}, nil
		default:
			return &runner.DummyDataCollector{}, fmt.Errorf("%s is an unknown DataCollector", e.DIContainerParameters.Collector)
		}
	})
	if err != nil {
		return &dig.Container{}, err
	}
	err = c.Provide(func() (core.ResultStore, error) {
		switch e.DIContainerParameters.Store {
		case "memory":
			return &core.MemoryStore{}, nil
		case "fs":
			return &store.FSStore{}, nil
		default:
			return &core.MemoryStore{}, fmt.Errorf("%s is an unknown ResultStore", e.DIContainerParameters.Store)
		}
	})
	if err != nil {
		return &dig.Container{}, err
	}
	err = c.Provide(func() core.Executor { return &executor.QueueExecutor{} })
	if err != nil {
		return &dig.Container{}, err
	}
	return
}

func zapLogger(conf *core.Conf) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	if conf.DevMode {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		c := zap.NewProductionEncoderConfig()
		c.EncodeTime = zapcore.ISO8601TimeEncoder //Not use UnixTime
		c.TimeKey = "timestamp"
		encoder = zapcore.NewJSONEncoder(c)
	}
	var level zap.AtomicLevel
	switch conf.LogLevel {
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cores := []zapcore.Core{}
	if conf.EnableFileLog {
		rotater, err := makeRotator(conf.LogDir, conf.LogRotationMaxDays)
		if err != nil {
			return &zap.Logger{}, err
		}
		syncer := zapcore.AddSync(rotater)
		rotateCore := zapcore.NewCore(
			encoder,
			syncer,
			level)
		cores = append(cores, rotateCore)
	}
	if !conf.DisableStdoutLog {
		debugCore := zapcore.NewCore(
			encoder,
			zapcore.Lock(os.Stdout),
			level)
		cores = append(cores, debugCore)
	}
	core := zapcore.NewTee(cores...)
	return zap.New(core, zap.AddCaller()), nil
}

func makeRotator(dirPath string, rotationMaxDays int) (*rotate.RotateLogs, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return &rotate.RotateLogs{}, fmt.Errorf("directory:%s is not found", dirPath)
	}
	if info.Mode().Perm()&(1<<uint(7)) == 0 {
		return &rotate.RotateLogs{}, fmt.Errorf("%s is not a writable directory", dirPath)
	}
	rotator, err := rotate.New(
		filepath.Join(dirPath, "qaoaengine-%Y-%m-%d.log"),
		rotate.WithMaxAge(time.Duration(rotationMaxDays)*24*time.Hour),
		rotate.WithRotationTime(time.Hour))
	if err != nil {
		return &rotate.RotateLogs{}, err
	}
	return rotator, nil
}

func main() {
	parse()
}

func setZap(conf *core.Conf) *zap.Logger {
	logger, err := zapLogger(conf)
	if err != nil {
		fmt.Printf("Failed to setup logger. Reason:%s\n", err)
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	zap.L().Info("Starting logger")
	zap.L().Info(fmt.Sprintf("DevMode is %t", conf.DevMode))
	zap.L().Info(fmt.Sprintf("Log rotation max days is %d", conf.LogRotationMaxDays))
	return logger
}

func setupSystemComponents(conf *core.Conf) *core.SystemComponents {
	core.SetVersion(conf, versionByBuildFlag)
	zap.L().Debug(fmt.Sprintf("Providing DI Container with parameters %+v", engine.DIContainerParameters))

	container, err := engine.provideDIContainer()
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setting up DI-Container. Reason:%s", err.Error()))
		panic(err)
	}
	zap.L().Debug("Setting up System Components")
	s := core.NewSystemComponents(container)
	if err := s.Setup(conf); err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setting up Container. Reason:%s", err.Error()))
		panic(err)
	}
	core.SetInfo(conf)
	return s
}

func registerSetting() {
	core.RegisterSetting(runner.DUMMY_COLLECTOR_SETTING_KEY, runner.NewDummyCollectorSetting())
}

// startEngine is the shared prelude of every command: logger, settings,
// then the component container.
func startEngine() (*core.SystemComponents, func(), error) {
	logger := setZap(engine.Conf)

	core.ResetSetting()
	registerSetting()
	zap.L().Debug("Registered setting")
	if err := core.ParseSettingFromPath(engine.Conf.SettingPath); err != nil {
		zap.L().Error(fmt.Sprintf("failed to parse settings/reason:%s", err))
		return nil, nil, err
	}

	s := setupSystemComponents(engine.Conf)
	log.LogVersion()

	cleanup := func() {
		s.TearDown()
		_ = logger.Sync()
	}
	return s, cleanup, nil
}

func buildRegistry(conf *core.Conf) (*device.Registry, error) {
	ds, err := device.LoadDeviceSettings(conf.DeviceSettingPath)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to load device settings/reason:%s", err))
		return nil, err
	}
	return device.NewRegistry(ds)
}

func datasetParams(conf *core.Conf, deviceName string, nShots int) pipeline.Params {
	id := conf.DatasetID
	if id == "" {
		id = pipeline.NewDatasetID()
		zap.L().Info(fmt.Sprintf("generated dataset id:%s", id))
	}
	p := pipeline.DefaultParams(id)
	p.DeviceName = deviceName
	p.NumWorkers = conf.NumWorkers
	if nShots > 0 {
		p.NShots = nShots
	}
	return p
}

type generateCmd struct {
	Device string `long:"device" description:"target device name" default:"rainbow-23" env:"QAOA_ENGINE_DEVICE"`
}

func newGenerateCmd() *generateCmd {
	return &generateCmd{}
}

func (c *generateCmd) Execute(args []string) error {
	_, cleanup, err := startEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	reg, err := buildRegistry(engine.Conf)
	if err != nil {
		return err
	}
	return pipeline.RunGeneration(datasetParams(engine.Conf, c.Device, 0), reg)
}

type precomputeCmd struct {
	Device string `long:"device" description:"target device name" default:"rainbow-23" env:"QAOA_ENGINE_DEVICE"`
}

func newPrecomputeCmd() *precomputeCmd {
	return &precomputeCmd{}
}

func (c *precomputeCmd) Execute(args []string) error {
	_, cleanup, err := startEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	reg, err := buildRegistry(engine.Conf)
	if err != nil {
		return err
	}
	return pipeline.RunPrecomputation(datasetParams(engine.Conf, c.Device, 0), reg)
}

type collectCmd struct {
	Device string `long:"device" description:"target device name" default:"rainbow-23" env:"QAOA_ENGINE_DEVICE"`
	Shots  int    `long:"shots" description:"shot count per data collection task" default:"50000" env:"QAOA_ENGINE_SHOTS"`
}

func newCollectCmd() *collectCmd {
	return &collectCmd{}
}

func (c *collectCmd) Execute(args []string) error {
	_, cleanup, err := startEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	reg, err := buildRegistry(engine.Conf)
	if err != nil {
		return err
	}
	return pipeline.RunCollection(datasetParams(engine.Conf, c.Device, c.Shots), reg)
}

type landscapeCmd struct {
	Device   string   `long:"device" description:"target device name" default:"rainbow-23" env:"QAOA_ENGINE_DEVICE"`
	Family   string   `long:"family" description:"problem family of the swept instance" default:"sk" choice:"hardware-grid" choice:"sk" choice:"3-regular"`
	Instance int      `long:"instance" description:"problem instance index" default:"0"`
	NQubits  int      `long:"n-qubits" description:"problem size in qubits" default:"4"`
	GammaRes int      `long:"gamma-res" description:"grid resolution along gamma" default:"31"`
	BetaRes  int      `long:"beta-res" description:"grid resolution along beta" default:"31"`
	Epochs   []string `long:"epoch" description:"epoch labels, the grid is swept once per epoch"`
	Shots    int      `long:"shots" description:"shot count per grid point" default:"50000"`
}

func newLandscapeCmd() *landscapeCmd {
	return &landscapeCmd{}
}

func (c *landscapeCmd) generationTask(datasetID string) core.GenerationTask {
	switch c.Family {
	case "hardware-grid":
		return core.HardwareGridProblemTask{
			DatasetID:  datasetID,
			DeviceName: c.Device,
			InstanceI:  c.Instance,
			NQubits:    c.NQubits,
		}
	case "3-regular":
		return core.ThreeRegularProblemTask{
			DatasetID: datasetID,
			InstanceI: c.Instance,
			NQubits:   c.NQubits,
		}
	default:
		return core.SKProblemTask{
			DatasetID: datasetID,
			InstanceI: c.Instance,
			NQubits:   c.NQubits,
		}
	}
}

func (c *landscapeCmd) Execute(args []string) error {
	_, cleanup, err := startEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	id := engine.Conf.DatasetID
	if id == "" {
		id = pipeline.NewDatasetID()
		zap.L().Info(fmt.Sprintf("generated dataset id:%s", id))
	}
	return pipeline.RunLandscape(c.generationTask(id), pipeline.LandscapeParams{
		DatasetID:  id,
		DeviceName: c.Device,
		GammaRes:   c.GammaRes,
		BetaRes:    c.BetaRes,
		Epochs:     c.Epochs,
		NShots:     c.Shots,
		NumWorkers: engine.Conf.NumWorkers,
	})
}

type runCmd struct {
	Device string `long:"device" description:"target device name" default:"rainbow-23" env:"QAOA_ENGINE_DEVICE"`
	Shots  int    `long:"shots" description:"shot count per data collection task" default:"50000" env:"QAOA_ENGINE_SHOTS"`
}

func newRunCmd() *runCmd {
	return &runCmd{}
}

func (c *runCmd) Execute(args []string) error {
	_, cleanup, err := startEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	reg, err := buildRegistry(engine.Conf)
	if err != nil {
		return err
	}
	p := datasetParams(engine.Conf, c.Device, c.Shots)

	ml := &log.MetricsLogger{FileDir: engine.Conf.MetricsLogDir}
	if err := ml.Setup(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zap.L().Debug("Setting up run-group")
	var g run.Group
	g.Add(run.SignalHandler(ctx, os.Interrupt))
	g.Add(func() error {
		return ml.Run(ctx)
	}, func(error) {
		cancel()
		ml.Cleanup()
	})
	g.Add(func() error {
		return pipeline.Run(p, reg)
	}, func(error) {
		cancel()
	})

	if err := g.Run(); err != nil {
		if _, ok := err.(run.SignalError); ok {
			zap.L().Info(fmt.Sprintf("stopped. Reason:%s", err))
			return nil
		}
		if ctx.Err() != nil && err == ctx.Err() {
			return nil
		}
		fmt.Fprintf(os.Stderr, "execution error:%v\n", err)
		return err
	}
	return nil
}
