// Package config loads the YAML project description that every autoreadme
// command starts from.
//
// A [Config] is deliberately schemaless: it is the decoded YAML mapping with
// typed accessors on top. Nothing is validated at load time; generators ask
// for the keys they need and a missing required key surfaces as a
// MISSING_FIELD error at the point of use.
//
// Scalars keep their literal text. `version: 1.0` reads back as "1.0" and
// `published: 2025-01-01` as "2025-01-01", which is what the rendered
// artifacts need.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stratum-research/autoreadme/pkg/errors"
)

// DefaultName is the conventional configuration file name.
const DefaultName = "config.yaml"

// DefaultDir is the subdirectory searched before the working directory.
const DefaultDir = "config"

// Config is a project description: string keys to strings, bools,
// sequences ([]any) and nested mappings (map[string]any).
type Config map[string]any

// Contributor is one entry of the contributors sequence.
type Contributor struct {
	Name        string
	Affiliation string
	Email       string
	ORCID       string
	Role        string
}

// Candidates returns the paths searched for the default config name,
// in order, relative to dir.
func Candidates(dir string) []string {
	return []string{
		filepath.Join(dir, DefaultDir, DefaultName),
		filepath.Join(dir, DefaultName),
	}
}

// Locate resolves the configuration path. An empty path or the default name
// searches [Candidates]; any other path is taken relative to dir and must
// exist.
func Locate(dir, path string) (string, error) {
	if path == "" || path == DefaultName {
		for _, p := range Candidates(dir) {
			if fileExists(p) {
				return p, nil
			}
		}
		return "", errors.New(errors.ErrCodeConfigNotFound,
			"could not find %s in %s or %s/ folder", DefaultName, displayDir(dir), DefaultDir)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if !fileExists(path) {
		return "", errors.New(errors.ErrCodeConfigNotFound, "could not find config file: %s", path)
	}
	return path, nil
}

// Load locates and parses the configuration. It returns the parsed config
// and the path it was read from.
func Load(dir, path string) (Config, string, error) {
	resolved, err := Locate(dir, path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeConfigNotFound, err, "read %s", resolved)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeConfigMalformed, err, "parse %s", resolved)
	}
	return cfg, resolved, nil
}

// Parse decodes a YAML document into a Config. An empty document yields an
// empty Config; a document whose root is not a mapping is malformed.
func Parse(data []byte) (Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Config{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return Config{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top-level value must be a mapping, got %s", kindName(root.Kind))
	}
	m, ok := convert(root).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value must be a mapping")
	}
	return Config(m), nil
}

// convert turns a yaml.Node into plain Go values, keeping scalar text intact.
func convert(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return convert(n.Content[0])
	case yaml.AliasNode:
		return convert(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = convert(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		s := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			s = append(s, convert(c))
		}
		return s
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return nil
		case "!!bool":
			if b, err := strconv.ParseBool(strings.ToLower(n.Value)); err == nil {
				return b
			}
		}
		return n.Value
	}
	return nil
}

// Has reports whether key is present with a non-empty value.
func (c Config) Has(key string) bool {
	switch v := c[key].(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	return true
}

// String returns key as text, or "" when absent. Sequences and mappings
// also read as "".
func (c Config) String(key string) string {
	return scalarString(c[key])
}

// StringOr returns key as text, or def when the key is absent or empty.
func (c Config) StringOr(key, def string) string {
	if s := c.String(key); s != "" {
		return s
	}
	return def
}

// Require returns key as text and fails with MISSING_FIELD when the key is
// absent. A present but empty string is returned as-is.
func (c Config) Require(key string) (string, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return "", errors.MissingField(key)
	}
	switch v.(type) {
	case []any, map[string]any:
		return "", errors.New(errors.ErrCodeInvalidInput, "field %q must be a scalar", key)
	}
	return scalarString(v), nil
}

// Strings returns a sequence of scalars. A single scalar reads as a
// one-element slice; absent keys read as nil.
func (c Config) Strings(key string) []string {
	switch v := c[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := scalarString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case nil:
		return nil
	default:
		if s := scalarString(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// Map returns a nested mapping as a Config, or nil when absent.
func (c Config) Map(key string) Config {
	if m, ok := c[key].(map[string]any); ok {
		return Config(m)
	}
	return nil
}

// Contributors returns the contributors sequence. Entries that are not
// mappings are skipped.
func (c Config) Contributors() []Contributor {
	items, _ := c["contributors"].([]any)
	out := make([]Contributor, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		cm := Config(m)
		out = append(out, Contributor{
			Name:        cm.String("name"),
			Affiliation: cm.String("affiliation"),
			Email:       cm.String("email"),
			ORCID:       cm.String("orcid"),
			Role:        cm.String("role"),
		})
	}
	return out
}

// Changes returns the changelog entries recorded for version.
func (c Config) Changes(version string) []string {
	entries := c.Map("changelog")
	if entries == nil {
		return nil
	}
	return entries.Strings(version)
}

// Year returns the first four characters of the publication date, or the
// whole string when it is shorter.
func (c Config) Year() (string, error) {
	published, err := c.Require("published")
	if err != nil {
		return "", err
	}
	return FirstFour(published), nil
}

// FirstFour returns the first four characters of s, or s when it is shorter.
func FirstFour(s string) string {
	r := []rune(s)
	if len(r) < 4 {
		return s
	}
	return string(r[:4])
}

func scalarString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case []any, map[string]any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "document"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func displayDir(dir string) string {
	if dir == "" || dir == "." {
		return "current directory"
	}
	return dir
}
