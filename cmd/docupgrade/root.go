package main

import (
	"io"
	"os"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cozy/docupgrade/internal/config"
	"github.com/cozy/docupgrade/model"
	"github.com/cozy/docupgrade/transform"
	"github.com/cozy/docupgrade/upgrade"
)

// app holds what the subcommands share once flags are parsed.
type app struct {
	configPath string
	verbose    bool
	env        map[string]string

	cfg      *config.Config
	registry *transform.Registry
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	return (&app{}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "docupgrade",
		Short:         "Upgrade versioned HTML documents to the latest schema",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a docupgrade.toml file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")
	flags.StringToStringVar(&a.env, "env", nil, "context passed to upgrade steps, as key=value pairs")

	cmd.AddCommand(newUpgradeCmd(a), newCheckCmd(a), newVersionsCmd(a))
	return cmd
}

func (a *app) init(logOut io.Writer) error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		cfg, err = config.Load(a.configPath)
		if err != nil {
			return err
		}
	}
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return errors.Annotate(err, "log level")
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}
	a.cfg = cfg
	a.registry = reg
	a.logger = newLogger(logOut, level)
	return nil
}

// newLogger builds a production-style JSON logger writing to w.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}

// newUpgrader creates an upgrader for one input document. onEvent, when not
// nil, sees every upgrade attempt after it is logged.
func (a *app) newUpgrader(onEvent func(upgrade.Event)) *upgrade.Upgrader {
	env := transform.Env{}
	for k, v := range a.env {
		env[k] = v
	}
	return upgrade.New(a.registry,
		upgrade.WithEnv(env),
		upgrade.WithMarker(a.cfg.VersionMarker()),
		upgrade.WithLogger(a.logger),
		upgrade.WithAudit(func(e upgrade.Event) {
			fields := []zap.Field{
				zap.String("declared", e.Declared),
				zap.String("target", e.Target),
				zap.Int("steps", len(e.Applied)),
			}
			if e.Err != nil {
				a.logger.Warn("Upgrade failed, content kept as is", append(fields, zap.Error(e.Err))...)
			} else {
				a.logger.Info("Upgraded document", fields...)
			}
			if onEvent != nil {
				onEvent(e)
			}
		}),
	)
}

// readInput reads the document from the named file, or from stdin when no
// file (or "-") is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Annotate(err, "reading stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.Annotate(err, "reading document")
	}
	return string(data), nil
}

// inputValue wraps markup according to the --trusted flag.
func inputValue(markup string, trusted bool) model.Value {
	if trusted {
		return model.Trusted(markup)
	}
	return model.Plain(markup)
}
