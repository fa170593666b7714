package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/influxstatsd/internal/config"
	"github.com/wesleyorama2/influxstatsd/internal/output"
	"github.com/wesleyorama2/influxstatsd/internal/settings"
	"github.com/wesleyorama2/influxstatsd/internal/stats"
	"github.com/wesleyorama2/influxstatsd/pkg/reporter"
)

const (
	envHost    = config.EnvHost
	envPort    = config.EnvPort
	envProject = config.EnvProject
)

// lookupEnv is replaced in tests.
var lookupEnv = os.LookupEnv

// session bundles what a subcommand needs to emit metrics.
type session struct {
	config   *config.Config
	reporter *reporter.Reporter
	recorder *stats.Recorder
	tags     reporter.Tags
	scheme   *output.ColorScheme
	noColor  bool
	verbose  bool
}

// resolveConfig merges, lowest precedence first: config file, settings
// document, environment, flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := &config.Config{}
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	config.ApplyDefaults(cfg)

	if path, _ := flags.GetString("settings"); path != "" {
		prefix, _ := flags.GetString("settings-prefix")
		if data, err := os.ReadFile(path); err == nil {
			if rc, ok := settings.FromJSON(string(data), settings.Options{Prefix: prefix}); ok {
				cfg.Statsd.Host = rc.Host
				cfg.Statsd.Port = config.Port(rc.Port)
				cfg.Project = rc.ProjectName
			}
		}
	}

	config.ApplyEnv(cfg, lookupEnv)

	if flags.Changed("host") {
		cfg.Statsd.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		port, _ := flags.GetString("port")
		cfg.Statsd.Port = config.Port(port)
	}
	if flags.Changed("project") {
		cfg.Project, _ = flags.GetString("project")
	}
	if flags.Changed("hostname") {
		cfg.Hostname, _ = flags.GetString("hostname")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseTags converts key=value pairs. "key=" yields an empty value.
func parseTags(pairs []string) (reporter.Tags, error) {
	tags := make(reporter.Tags, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid tag '%s', expected key=value", pair)
		}
		tags[key] = value
	}
	return tags, nil
}

// newSession resolves configuration and builds the reporter.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	tagPairs, _ := flags.GetStringArray("tag")
	flagTags, err := parseTags(tagPairs)
	if err != nil {
		return nil, err
	}

	noColorFlag, _ := flags.GetBool("no-color")
	noColor := !output.UseColors(cmd.OutOrStdout(), noColorFlag)
	scheme := output.SchemeFor(noColor)
	verbose, _ := flags.GetBool("verbose")
	dryRun, _ := flags.GetBool("dry-run")

	var recorder *stats.Recorder
	opts := cfg.ReporterOptions()
	if dryRun {
		opts = append(opts, reporter.WithTransport(output.NewWireWriter(cmd.OutOrStdout(), scheme)))
	}
	opts = append(opts, reporter.WithTransportWrapper(func(next reporter.Transport) reporter.Transport {
		recorder = stats.NewRecorder(next)
		return recorder
	}))

	r, err := reporter.New(cfg.Reporter(), opts...)
	if err != nil {
		return nil, err
	}

	return &session{
		config:   cfg,
		reporter: r,
		recorder: recorder,
		tags:     reporter.Merge(cfg.DefaultTags(), flagTags),
		scheme:   scheme,
		noColor:  noColor,
		verbose:  verbose,
	}, nil
}

// report prints the metric just emitted when verbose output is on.
func (s *session) report(cmd *cobra.Command, kind, name string, value interface{}) {
	if !s.verbose {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s = %s\n",
		output.SuccessIcon(s.noColor),
		s.scheme.Kind.Sprint(kind),
		output.FormatBucket(s.reporter.MetricName(name, s.tags), s.scheme),
		s.scheme.Value.Sprint(value),
	)
}

// close flushes pending samples.
func (s *session) close() {
	s.reporter.Close()
}
