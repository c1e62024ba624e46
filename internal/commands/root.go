package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sshdeck/internal/core/config"
	"github.com/hay-kot/sshdeck/internal/core/styles"
	"github.com/hay-kot/sshdeck/pkg/logutils"
)

// NewApp builds the root command with every subcommand registered. The
// browser is the default action.
func NewApp(flags *Flags, version string) *cli.Command {
	var logCloser func() error

	app := &cli.Command{
		Name:      "sshdeck",
		Usage:     "Browse the hosts in your ssh config",
		UsageText: "sshdeck [global options] [command [command options]]",
		Description: `sshdeck reads your ssh_config files and lets you browse and search the
Host entries they define.

Run 'sshdeck' with no arguments to open the interactive browser.
Run 'sshdeck ls' to print the hosts instead.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("SSHDECK_LOG_LEVEL"),
				Value:       logutils.DefaultLevel,
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("SSHDECK_LOG_FILE"),
				Value:       DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SSHDECK_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringSliceFlag{
				Name:        "ssh-config",
				Usage:       "ssh_config file or glob to load, repeatable (replaces the configured list)",
				Destination: &flags.SSHConfig,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "color theme (overrides tui.theme)",
				Destination: &flags.Theme,
			},
			&cli.BoolFlag{
				Name:        "no-mouse",
				Usage:       "do not enable mouse reporting",
				Destination: &flags.NoMouse,
			},
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "disable colored output",
				Destination: &flags.NoColor,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if flags.Theme != "" {
				if !slices.Contains(styles.ThemeNames(), flags.Theme) {
					return ctx, fmt.Errorf("unknown theme %q (available: %v)", flags.Theme, styles.ThemeNames())
				}
				cfg.TUI.Theme = flags.Theme
			}

			// Validation ensures the name is known.
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			if flags.NoColor || !cfg.TUI.ColorEnabled() {
				styles.DisableColor()
			}

			flags.Config = cfg
			log.Debug().
				Str("config", flags.ConfigPath).
				Strs("ssh_config", flags.Patterns()).
				Str("theme", cfg.TUI.Theme).
				Msg("configuration loaded")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				return logCloser()
			}
			return nil
		},
		// Exit codes are decided below, after deferred cleanup has run.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	browseCmd := NewBrowseCmd(flags)

	app = browseCmd.Register(app)
	app.Flags = append(app.Flags, browseCmd.Flags()...)
	app = NewLsCmd(flags).Register(app)
	app = NewConfigValidateCmd(flags).Register(app)

	// Open the browser when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'sshdeck --help' for usage", c.Args().First())
		}
		return browseCmd.Run(ctx, c)
	}

	return app
}
