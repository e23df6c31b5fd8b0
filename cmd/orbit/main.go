package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lixenwraith/orbit/audio"
	"github.com/lixenwraith/orbit/config"
	"github.com/lixenwraith/orbit/engine"
	"github.com/lixenwraith/orbit/parameter"
	"github.com/lixenwraith/orbit/scenario"
	"github.com/lixenwraith/orbit/telemetry"
)

var (
	configFlag   = flag.String("config", "", "Config file (gcfg); overrides -scenario")
	scenarioFlag = flag.String("scenario", scenario.Solar, fmt.Sprintf("Built-in seed set: %v", scenario.Names()))
	stepFlag     = flag.Float64("step", 0, "Simulated seconds per step, 0 keeps the configured value")
	lapseFlag    = flag.Float64("lapse", -1, "Time lapse fraction in [0, 1], negative keeps the configured value")
	hardenedFlag = flag.Bool("hardened", false, "Conservative merging")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/orbit.log")
	metricsFlag  = flag.String("metrics", "", "Serve Prometheus metrics on this address, e.g. :9090")
	audioFlag    = flag.Bool("audio", false, "Enable audio cues (also ORBIT_AUDIO_ENABLED)")
	seedFlag     = flag.Uint64("seed", 0, "Seed for thrown body mass and colour, 0 uses the clock")
	exampleFlag  = flag.Bool("example-config", false, "Print an example config file and exit")
)

// loadSettings resolves the config file or built-in scenario and applies flag overrides
func loadSettings(path, scenarioName string, step, lapse float64, hardened bool) (*config.Settings, error) {
	var (
		s   *config.Settings
		err error
	)
	if path != "" {
		s, err = config.Load(path)
	} else {
		f := config.DefaultFile()
		f.Simulation.Scenario = scenarioName
		s, err = f.Settings()
	}
	if err != nil {
		return nil, err
	}

	if step > 0 {
		s.Engine.TimeStep = step
	}
	if lapse >= 0 {
		s.Engine.TimeLapse = lapse
	}
	if hardened {
		s.Engine.Hardened = true
	}
	if err := s.Engine.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func main() {
	flag.Parse()

	if *exampleFlag {
		fmt.Println(config.ExampleFile)
		return
	}

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	settings, err := loadSettings(*configFlag, *scenarioFlag, *stepFlag, *lapseFlag, *hardenedFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orbit: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.NewMetrics(reg)
	if *metricsFlag != "" {
		go func() {
			if err := telemetry.Serve(ctx, *metricsFlag, reg); err != nil {
				log.Printf("orbit: %v", err)
			}
		}()
	}

	audioCfg := audio.LoadConfig()
	if *audioFlag {
		audioCfg.Enabled = true
	}
	player := audio.NewPlayer(audioCfg)
	if err := player.Initialize(); err != nil {
		log.Printf("orbit: %v (continuing without audio)", err)
	}
	defer player.Cleanup()

	world := engine.NewWorld(settings.Engine,
		engine.WithRecorder(engine.Recorders(metrics, audio.Recorder{Player: player})))
	if settings.Following {
		world.SetFollowed(settings.Follow)
	}
	log.Printf("orbit: %d bodies, dt=%gs, hardened=%v", world.Len(), world.DT(), settings.Engine.Hardened)

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	thrower := engine.NewThrower(seed)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "orbit: failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "orbit: failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	defer screen.Fini()

	crash := newCrashHandler(screen)
	defer func() {
		crash.handle(recover())
	}()

	sched := engine.NewScheduler(world, parameter.StepInterval)
	sched.SetCrashHandler(crash.handle)
	sched.Start(ctx)
	defer sched.Stop()

	newApp(screen, world, sched, thrower).run(ctx)
}
