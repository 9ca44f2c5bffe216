package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"buildmark/internal/config"
	"buildmark/internal/diagnostic"
)

// app is the state shared by all commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	overrides  overrideFlags

	log *log.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "buildmark",
		Short: "Generate a Kotlin object holding build metadata",
		Long: `buildmark reads typed options from buildmark.yaml (or .json, .toml) and
writes them as the properties of one Kotlin object, ready to be compiled
with the rest of the sources.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", config.DefaultFile, "configuration `file` (.yaml, .yml, .json or .toml)")
	flags.StringVar(&a.logLevel, "log-level", "info", "log `level`: trace, debug, info, warn or error")

	cmd.AddCommand(
		newGenerateCmd(a),
		newCheckCmd(a),
		newInspectCmd(a),
		newWatchCmd(a),
		newVersionCmd(a),
	)

	return cmd
}

func (a *app) setup() error {
	level, err := parseLevel(a.logLevel)
	if err != nil {
		return err
	}

	a.log = &log.Logger{
		Level:      level,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:      a.stderr,
			QuoteString: true,
		},
	}

	return nil
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return log.TraceLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// overrideFlags are the command line settings that replace the file's.
type overrideFlags struct {
	object  string
	pkg     string
	output  string
	version string
	konst   bool
	set     []string
}

func (o *overrideFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&o.object, "object", "", "name of the generated object")
	flags.StringVar(&o.pkg, "package", "", "Kotlin package of the generated object")
	flags.StringVarP(&o.output, "output", "o", "", "output `directory`, replaced on every run")
	flags.StringVar(&o.version, "version", "", "project version, the default VERSION option")
	flags.BoolVar(&o.konst, "const", false, "declare constant options as const val")
	flags.StringArrayVar(&o.set, "set", nil, "set option `NAME=VALUE`; VALUE is YAML and may be tagged, e.g. '!long 5'")
}

// get returns the overrides of the flags given on the command line.
func (o *overrideFlags) get(flags *pflag.FlagSet) config.Overrides {
	ov := config.Overrides{Set: o.set}

	changed := func(name string, p *string) *string {
		if flags.Changed(name) {
			return p
		}

		return nil
	}

	ov.Object = changed("object", &o.object)
	ov.Package = changed("package", &o.pkg)
	ov.Output = changed("output", &o.output)
	ov.Version = changed("version", &o.version)

	if flags.Changed("const") {
		ov.Const = &o.konst
	}

	return ov
}

// load reads the configuration. A missing default file means all defaults;
// a file named with --config must exist.
func (a *app) load(cmd *cobra.Command) (*config.Config, error) {
	ov := a.overrides.get(cmd.Flags())

	cfg, diags, err := config.Load(a.configPath, ov)
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		a.log.Debug().Str("config", a.configPath).Msg("no configuration file, using defaults")
		cfg, diags, err = config.Parse(nil, config.FormatYAML, a.configPath, ov)
	}

	a.report(diags)

	if err != nil {
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: %d configuration error(s)", a.configPath, len(diags.Errors))
		}

		return nil, err
	}

	a.log.Debug().Str("config", a.configPath).Int("options", len(cfg.Options)).Msg("configuration loaded")

	return cfg, nil
}

// report logs every diagnostic at its severity.
func (a *app) report(diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		var e *log.Entry

		switch d.Severity {
		case diagnostic.SeverityError:
			e = a.log.Error()
		case diagnostic.SeverityWarning:
			e = a.log.Warn()
		default:
			e = a.log.Info()
		}

		if d.Source != "" {
			e = e.Str("source", d.Source)
		}

		if d.Subject != "" {
			e = e.Str("subject", d.Subject)
		}

		e.Str("code", d.Code).Msg(d.Message)
	}
}

// fail logs err and returns the error that ends the command quietly.
func (a *app) fail(err error, msg string) error {
	for _, e := range unwrapJoined(err) {
		a.log.Error().Err(e).Msg(msg)
	}

	return errReported
}

func unwrapJoined(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}

	return []error{err}
}
