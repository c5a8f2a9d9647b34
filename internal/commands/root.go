package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/colonyops/bon/internal/bon"
)

// NewRoot returns the bon root command with global flags bound to flags.
// Commands are registered separately by Register so callers can attach
// their own Before and After hooks first.
func NewRoot(flags *Flags) *cli.Command {
	return &cli.Command{
		Name:      "bon",
		Usage:     "Read and survey per-repository work item logs",
		UsageText: "bon [global options] command [command options]",
		Description: `bon reads the append-only item log kept under .bon/items.jsonl in each
repository. 'bon read' renders one directory's log; 'bon survey' and 'bon audit'
aggregate every repository under the repos directory.`,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (trace, debug, info, warn, error, disabled)",
				Sources:     cli.EnvVars("BON_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "write JSON logs to this file instead of stderr",
				Sources:     cli.EnvVars("BON_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("BON_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "repos-dir",
				Usage:       "directory whose subdirectories are surveyed (default: repos_dir from config)",
				Sources:     cli.EnvVars("BON_REPOS_DIR", "REPOS_DIR"),
				Destination: &flags.ReposDir,
			},
			&cli.StringFlag{
				Name:        "otlp-endpoint",
				Usage:       "OTLP/HTTP collector for traces (disabled when empty)",
				Sources:     cli.EnvVars("BON_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"),
				Destination: &flags.OTLPEndpoint,
			},
		},
	}
}

// Register adds every bon command to root.
func Register(root *cli.Command, flags *Flags, app *bon.App) *cli.Command {
	root = NewReadCmd(flags, app).Register(root)
	root = NewSurveyCmd(flags, app).Register(root)
	root = NewAuditCmd(flags, app).Register(root)
	root = NewBrowseCmd(flags, app).Register(root)
	root = NewDoctorCmd(flags, app).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)
	return root
}
