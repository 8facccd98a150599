package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptAPIURL sets the GraphQL endpoint URL.
func OptAPIURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("API URL", s) {
			c.API.URL = s
		}
	}
}

// OptAPIPageSize sets the page size for paginated area queries.
func OptAPIPageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("API Page Size", i) {
			c.API.PageSize = i
		}
	}
}

// OptAPITimeoutSec sets the per-request timeout in seconds.
func OptAPITimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("API Timeout", i) {
			c.API.TimeoutSec = i
		}
	}
}

// OptAPIMaxRetries sets the retry bound for one page request.
func OptAPIMaxRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("API Max Retries", i) {
			c.API.MaxRetries = i
		}
	}
}

// OptExportRegions limits the export to the given countries.
func OptExportRegions(regions []string) Option {
	return func(c *Config) {
		var res []string
		for _, r := range regions {
			r = strings.TrimSpace(r)
			if r != "" {
				res = append(res, r)
			}
		}
		c.Export.Regions = res
	}
}

// OptExportOutput sets the destination parquet filename.
func OptExportOutput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Export Output", s) {
			c.Export.Output = s
		}
	}
}

// OptExportCompression sets the parquet compression codec name.
// The writer validates the name against its codec table before any
// I/O happens; here it is stored as given.
func OptExportCompression(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("Export Compression", s) {
			c.Export.Compression = s
		}
	}
}

// OptExportSchemaFile sets the declarative schema document path.
func OptExportSchemaFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Export Schema File", s) {
			c.Export.SchemaFile = s
		}
	}
}

// OptLogFormat sets the log output format.
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the logging level.
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":  {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format": {"json": s, "text": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		[]string{name, val, strings.Join(lines, "\n")},
	)
	return false
}
