package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anetops/anet-inventory/internal/branding"
	"go.yaml.in/yaml/v3"
	"gopkg.in/ini.v1"
)

// Defaults applied when the settings file or individual keys are absent.
const (
	DefaultCachePath   = "/tmp"
	DefaultCacheMaxAge = 300
)

// Settings holds the loaded configuration. Load constructs it once at
// startup and nothing modifies it afterwards; command-line overrides are
// applied by the caller to its own run options, never written back here.
type Settings struct {
	PublicKey         string
	PrivateKey        string
	CachePath         string
	CacheMaxAge       int
	UsePrivateNetwork bool
	GroupVariables    map[string]any
}

// ParseError reports a recognized key whose value could not be coerced.
// Unrecognized keys never produce one; they are skipped for forward
// compatibility.
type ParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config key %q: invalid value %q: %v", e.Key, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the settings file at path. A missing file is not an error:
// the tool is expected to run with zero configuration, so defaults apply
// silently. A recognized key that is present but malformed fails fast with
// *ParseError; no default is substituted for it.
func Load(path string) (*Settings, error) {
	s := &Settings{
		CachePath:      DefaultCachePath,
		CacheMaxAge:    DefaultCacheMaxAge,
		GroupVariables: map[string]any{},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// Only the recognized section is honored. Section names are
	// case-sensitive; a foreign or missing section means defaults.
	sec, err := f.GetSection(branding.IniSection())
	if err != nil {
		return s, nil
	}

	if v, ok := stringKey(sec, "public_key"); ok {
		s.PublicKey = v
	}
	if v, ok := stringKey(sec, "private_key"); ok {
		s.PrivateKey = v
	}
	if v, ok := stringKey(sec, "cache_path"); ok {
		s.CachePath = v
	}
	if raw, ok := stringKey(sec, "cache_max_age"); ok {
		age, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &ParseError{Key: "cache_max_age", Value: raw, Err: errors.New("not a decimal integer")}
		}
		if age < 0 {
			return nil, &ParseError{Key: "cache_max_age", Value: raw, Err: errors.New("must not be negative")}
		}
		s.CacheMaxAge = age
	}
	if raw, ok := stringKey(sec, "use_private_network"); ok {
		b, err := parseBool(raw)
		if err != nil {
			return nil, &ParseError{Key: "use_private_network", Value: raw, Err: err}
		}
		s.UsePrivateNetwork = b
	}
	if raw, ok := stringKey(sec, "group_variables"); ok {
		vars, err := parseGroupVariables(raw)
		if err != nil {
			return nil, &ParseError{Key: "group_variables", Value: raw, Err: err}
		}
		s.GroupVariables = vars
	}

	return s, nil
}

func stringKey(sec *ini.Section, name string) (string, bool) {
	if !sec.HasKey(name) {
		return "", false
	}
	return sec.Key(name).String(), true
}

// parseBool accepts the spellings found in inventory settings files in the
// wild: true/false, yes/no, and 1/0, in any case.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	}
	return false, errors.New("not a boolean (want true/false, yes/no, or 1/0)")
}

// parseGroupVariables decodes the group_variables literal. The value is a
// brace-delimited mapping, e.g. { 'ansible_user': 'root' }. It is decoded
// as a YAML flow mapping, which covers both quoting styles, rather than
// handed to anything that evaluates expressions.
func parseGroupVariables(raw string) (map[string]any, error) {
	var node any
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil {
		return nil, fmt.Errorf("not a valid mapping literal: %w", err)
	}
	if node == nil {
		return map[string]any{}, nil
	}
	m, ok := node.(map[string]any)
	if !ok {
		return nil, errors.New("not a mapping")
	}
	return m, nil
}
