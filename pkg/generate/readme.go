package generate

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/errors"
)

// ReadmeTemplate is the template file name, both embedded and as a
// project override under templates/.
const ReadmeTemplate = "readme.md.tmpl"

//go:embed templates/readme.md.tmpl
var templateFS embed.FS

// Readme renders README.md from a text/template with the whole config as
// its data. Missing keys render as empty text.
type Readme struct {
	opts Options
}

// NewReadme creates the README generator.
func NewReadme(opts Options) *Readme {
	return &Readme{opts: opts}
}

// Name implements Generator.
func (r *Readme) Name() string { return ReadmeFile }

// Generate implements Generator.
func (r *Readme) Generate(ctx context.Context, cfg config.Config) (string, error) {
	name, text, err := r.source()
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Funcs(Funcs()).Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(cfg)); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "render template %s", name)
	}
	// A missing key in a map prints as "<no value>" even with missingkey=zero.
	return strings.ReplaceAll(buf.String(), noValue, ""), nil
}

const noValue = "<no value>"

// source resolves the template: the explicit --template path, then
// templates/readme.md.tmpl in the project, then the embedded default.
func (r *Readme) source() (name, text string, err error) {
	if r.opts.Template != "" {
		path := r.opts.Template
		if !filepath.IsAbs(path) && r.opts.Dir != "" {
			path = filepath.Join(r.opts.Dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", errors.Wrap(errors.ErrCodeTemplateNotFound, err, "template %s not found", r.opts.Template)
		}
		return filepath.Base(path), string(data), nil
	}

	local := filepath.Join(r.opts.Dir, "templates", ReadmeTemplate)
	if data, err := os.ReadFile(local); err == nil {
		r.opts.logger().Debug("using project template", "path", local)
		return ReadmeTemplate, string(data), nil
	}

	data, err := templateFS.ReadFile("templates/" + ReadmeTemplate)
	if err != nil {
		return "", "", errors.Wrap(errors.ErrCodeTemplateNotFound, err, "embedded template %s", ReadmeTemplate)
	}
	return ReadmeTemplate, string(data), nil
}

// Funcs returns the helper functions available to README templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"join":    join,
		"lower":   func(v any) string { return strings.ToLower(scalarText(v)) },
		"upper":   func(v any) string { return strings.ToUpper(scalarText(v)) },
		"default": defaultText,
		"year":    func(v any) string { return config.FirstFour(scalarText(v)) },
		"badge":   badge,
	}
}

func join(sep string, v any) string {
	switch v := v.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := scalarText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, sep)
	case []string:
		return strings.Join(v, sep)
	default:
		return scalarText(v)
	}
}

func defaultText(def string, v any) string {
	if s := scalarText(v); s != "" {
		return s
	}
	return def
}

// badge renders a shields.io badge as Markdown.
func badge(label, message, color string) string {
	esc := func(s string) string {
		s = strings.ReplaceAll(s, "-", "--")
		s = strings.ReplaceAll(s, "_", "__")
		return url.PathEscape(s)
	}
	return fmt.Sprintf("![%s](https://img.shields.io/badge/%s-%s-%s)", label, esc(label), esc(message), url.PathEscape(color))
}

// scalarText renders a config value the way a template prints a scalar.
// Sequences and mappings render as "".
func scalarText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any, map[string]any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
