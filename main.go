package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/bon/internal/bon"
	"github.com/colonyops/bon/internal/commands"
	"github.com/colonyops/bon/internal/core/config"
	"github.com/colonyops/bon/internal/core/logging"
	"github.com/colonyops/bon/internal/telemetry"
	"github.com/colonyops/bon/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// ldflags aren't set by `go install module@version`; fall back to the
	// module version and VCS metadata from the build info.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	// Environment from the dotenv file fills flags that read env vars. Real
	// environment variables win.
	if err := godotenv.Load(commands.DefaultEnvFile()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load env file: %v\n", err)
	}

	var (
		logCloser func()
		shutdown  telemetry.Shutdown
		bonApp    = &bon.App{}
	)

	flags := &commands.Flags{}

	app := commands.NewRoot(flags)
	app.Version = build()
	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger.Hook(logging.ContextHook{})
		logCloser = closer

		cfg, err := config.Load(flags.ConfigPath)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		flags.Config = cfg

		if err := cfg.ApplyTheme(); err != nil {
			log.Warn().Err(err).Msg("keeping default theme")
		}

		shutdown, err = telemetry.Init(ctx, telemetry.Config{
			ServiceName:    "bon",
			ServiceVersion: version,
			Endpoint:       flags.OTLPEndpoint,
		})
		if err != nil {
			log.Warn().Err(err).Msg("tracing disabled")
		}

		// Populate the pre-allocated App struct (commands already hold a pointer to it)
		*bonApp = *bon.NewApp(cfg, log.Logger)

		return ctx, nil
	}
	app.After = func(ctx context.Context, c *cli.Command) error {
		if shutdown != nil {
			if err := shutdown(ctx); err != nil {
				log.Error().Err(err).Msg("failed to flush traces")
			}
		}

		if logCloser != nil {
			logCloser()
		}
		return nil
	}

	app = commands.Register(app, flags, bonApp)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		if !errors.Is(err, commands.ErrReported) {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		exitCode = 1
	}

	os.Exit(exitCode)
}
