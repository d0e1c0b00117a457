package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"convdup/internal/convention"
	"convdup/internal/group"
)

// FileName is the project configuration file looked up from the scan root upwards.
const FileName = "convdup.toml"

// Config is the full analysis configuration. Zero values are not meaningful;
// start from Default.
type Config struct {
	Analysis Analysis `toml:"analysis"`
	Files    Files    `toml:"files"`

	// Path is the file the configuration was loaded from; empty for defaults.
	Path string `toml:"-"`
}

// Analysis holds the options consumed by the grouper.
type Analysis struct {
	EnforceEnclosingScope bool     `toml:"enforce_enclosing_scope"`
	MinConventions        int      `toml:"min_conventions"`
	IgnoredConventions    []string `toml:"ignored_conventions"`
	NestedPolicy          string   `toml:"nested_policy"`
	CrossFile             bool     `toml:"cross_file"`
	MaxDiagnostics        int      `toml:"max_diagnostics"`
}

// Files controls discovery and batch execution.
type Files struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	Jobs    int      `toml:"jobs"`
}

func Default() Config {
	return Config{
		Analysis: Analysis{
			EnforceEnclosingScope: true,
			MinConventions:        2,
			NestedPolicy:          group.NestedIndependent.String(),
			MaxDiagnostics:        100,
		},
		Files: Files{
			Include: []string{"**/*.c", "**/*.h"},
		},
	}
}

// Validate checks ranges and enum-like fields.
func (c *Config) Validate() error {
	if c.Analysis.MinConventions < 1 {
		return fmt.Errorf("analysis.min_conventions must be >= 1, got %d", c.Analysis.MinConventions)
	}
	if c.Analysis.MaxDiagnostics < 0 {
		return fmt.Errorf("analysis.max_diagnostics must be >= 0, got %d", c.Analysis.MaxDiagnostics)
	}
	if c.Files.Jobs < 0 {
		return fmt.Errorf("files.jobs must be >= 0, got %d", c.Files.Jobs)
	}
	if _, err := group.ParseNestedPolicy(c.Analysis.NestedPolicy); err != nil {
		return fmt.Errorf("analysis.nested_policy: %w", err)
	}
	if _, err := c.Ignored(); err != nil {
		return fmt.Errorf("analysis.ignored_conventions: %w", err)
	}
	if len(c.Files.Include) == 0 {
		return fmt.Errorf("files.include must not be empty")
	}
	return nil
}

// Ignored parses IgnoredConventions.
func (c *Config) Ignored() (convention.Set, error) {
	var set convention.Set
	for _, name := range c.Analysis.IgnoredConventions {
		tag, err := convention.ParseTag(name)
		if err != nil {
			return 0, err
		}
		set = set.With(tag)
	}
	return set, nil
}

// GroupOptions converts the analysis section for the grouper.
// The config must have passed Validate.
func (c *Config) GroupOptions() group.Options {
	ignored, _ := c.Ignored()
	nested, _ := group.ParseNestedPolicy(c.Analysis.NestedPolicy)
	return group.Options{
		EnforceEnclosingScope: c.Analysis.EnforceEnclosingScope,
		MinConventions:        c.Analysis.MinConventions,
		Ignored:               ignored,
		Nested:                nested,
	}
}

// Fingerprint hashes every setting that changes per-file results.
// Cached results are only valid for the fingerprint they were stored under.
func (c *Config) Fingerprint() uint64 {
	ignored := slices.Clone(c.Analysis.IgnoredConventions)
	for i := range ignored {
		ignored[i] = strings.ToLower(strings.TrimSpace(ignored[i]))
	}
	slices.Sort(ignored)

	h := xxhash.New()
	for _, part := range []string{
		strconv.FormatBool(c.Analysis.EnforceEnclosingScope),
		strconv.Itoa(c.Analysis.MinConventions),
		strings.Join(ignored, ","),
		c.Analysis.NestedPolicy,
		strconv.Itoa(c.Analysis.MaxDiagnostics),
	} {
		_, _ = h.WriteString(part)
		_, _ = h.WriteString("\x00")
	}
	return h.Sum64()
}
