// Package settings bootstraps the process-wide reporter from an
// application settings document.
//
// The lookup is best effort: a missing file, malformed JSON or absent keys
// leave the reporter unconfigured, and the first emission then fails with
// reporter.ErrMissingConfiguration.
package settings

import (
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/influxstatsd/pkg/reporter"
)

// Keys read from the settings document. Nested documents are supported
// through gjson paths, e.g. "metrics.STATSD_INFLUX_HOST" with Prefix.
const (
	KeyHost    = "STATSD_INFLUX_HOST"
	KeyPort    = "STATSD_INFLUX_PORT"
	KeyProject = "PROJECT_NAME"
)

// Options controls where the settings are looked up.
type Options struct {
	// Prefix is a gjson path to the object holding the keys (optional).
	Prefix string
}

// FromJSON extracts the reporter settings from doc. The second result is
// false when the document is not valid JSON or any of the three keys is
// missing.
func FromJSON(doc string, opts Options) (reporter.Config, bool) {
	if !gjson.Valid(doc) {
		return reporter.Config{}, false
	}

	root := gjson.Parse(doc)
	if opts.Prefix != "" {
		root = root.Get(opts.Prefix)
		if !root.IsObject() {
			return reporter.Config{}, false
		}
	}

	results := gjson.GetMany(root.Raw, escapeKey(KeyHost), escapeKey(KeyPort), escapeKey(KeyProject))
	for _, r := range results {
		if !r.Exists() {
			return reporter.Config{}, false
		}
	}

	return reporter.Config{
		Host:        results[0].String(),
		Port:        results[1].String(),
		ProjectName: results[2].String(),
	}, true
}

// Bootstrap reads the settings file at path and configures the
// process-wide reporter. It reports whether Configure was called.
func Bootstrap(path string, opts Options, reporterOpts ...reporter.Option) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	cfg, ok := FromJSON(string(data), opts)
	if !ok {
		return false
	}

	reporter.Configure(cfg.Host, cfg.Port, cfg.ProjectName, reporterOpts...)
	return true
}

// escapeKey escapes gjson path metacharacters in a literal key.
func escapeKey(key string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return replacer.Replace(key)
}
