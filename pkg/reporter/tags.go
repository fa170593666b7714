package reporter

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// hostname is resolved once at process start.
var hostname = detectHostname()

func detectHostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "unknown"
	}
	return sanitizeHostname(name)
}

func sanitizeHostname(name string) string {
	return strings.ReplaceAll(name, ".", "-")
}

// Hostname returns the local host name used for the default host tag.
func Hostname() string {
	return hostname
}

// Tags are caller-supplied labels. A nil value marks the tag as absent and
// it is not rendered; an empty string is rendered as "key=".
type Tags map[string]any

// Tag is a single rendered key/value pair.
type Tag struct {
	Key   string
	Value string
}

// DefaultTags returns the tags appended to every metric.
func DefaultTags() []Tag {
	return []Tag{{Key: "host", Value: hostname}}
}

// EscapeTag replaces the statsd field separator ':' with '_'.
func EscapeTag(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// FormatTags renders custom tags sorted by key, followed by defaults, as a
// comma separated list of key=value pairs.
//
// Defaults are appended as given; a custom "host" tag is not deduplicated.
func FormatTags(custom Tags, defaults ...Tag) string {
	tags := make([]Tag, 0, len(custom)+len(defaults))
	for k, v := range custom {
		value, ok := tagValue(v)
		if !ok {
			continue
		}
		tags = append(tags, Tag{Key: k, Value: value})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Key < tags[j].Key })
	tags = append(tags, defaults...)

	var sb strings.Builder
	for i, t := range tags {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(EscapeTag(t.Key))
		sb.WriteByte('=')
		sb.WriteString(EscapeTag(t.Value))
	}
	return sb.String()
}

// tagValue converts a tag value to its string form. The second result is
// false for absent values.
func tagValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case *string:
		if val == nil {
			return "", false
		}
		return *val, true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}

// Merge returns a new Tags holding base overlaid with override.
func Merge(base, override Tags) Tags {
	result := make(Tags, len(base)+len(override))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range override {
		result[k] = v
	}
	return result
}
