package generate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/errors"
	"github.com/stratum-research/autoreadme/pkg/integrations/github"
)

// LicenseSource fetches license templates by GitHub license key.
// *github.Client implements it.
type LicenseSource interface {
	FetchLicense(ctx context.Context, key string, refresh bool) (*github.License, error)
}

// DefaultLicense is used when the config has no license key.
const DefaultLicense = "MIT"

// DefaultHolder is the copyright holder when no contributor is listed.
const DefaultHolder = "Author"

// inlineLicenses are rendered without network access. Each text uses the
// [year] and [fullname] placeholders.
var inlineLicenses = map[string]string{
	"mit":          mitText,
	"cc-by-4.0":    ccByText,
	"cc-by-sa-4.0": ccBySAText,
	"cc-by-nc-4.0": ccByNCText,
	"cc0-1.0":      cc0Text,
}

// fetchedLicenses maps identifiers to GitHub license keys.
var fetchedLicenses = map[string]string{
	"apache-2.0":   "apache-2.0",
	"bsd-2-clause": "bsd-2-clause",
	"bsd-3-clause": "bsd-3-clause",
	"gpl-3.0":      "gpl-3.0",
	"lgpl-3.0":     "lgpl-3.0",
	"agpl-3.0":     "agpl-3.0",
	"mpl-2.0":      "mpl-2.0",
	"unlicense":    "unlicense",
}

// SupportedLicenses lists the accepted license identifiers.
var SupportedLicenses = []string{
	"MIT", "Apache-2.0", "BSD-2-Clause", "BSD-3-Clause",
	"GPL-3.0", "LGPL-3.0", "AGPL-3.0", "MPL-2.0", "Unlicense",
	"CC-BY-4.0", "CC-BY-SA-4.0", "CC-BY-NC-4.0", "CC0-1.0",
}

// LicenseBundled reports whether id renders without fetching from GitHub.
func LicenseBundled(id string) bool {
	_, ok := inlineLicenses[strings.ToLower(strings.TrimSpace(id))]
	return ok
}

var placeholders = []struct {
	token  string
	holder bool
}{
	{"[year]", false},
	{"[yyyy]", false},
	{"<year>", false},
	{"[fullname]", true},
	{"[name of copyright owner]", true},
	{"<name of author>", true},
}

// License renders the LICENSE file.
//
// Without a `license` key it renders MIT. Unknown identifiers and fetch
// failures produce an explanatory text instead of an error, so `make all`
// still writes a LICENSE that tells the user what went wrong.
type License struct {
	opts Options
}

// NewLicense creates the license generator.
func NewLicense(opts Options) *License {
	return &License{opts: opts}
}

// Name implements Generator.
func (l *License) Name() string { return LicenseFile }

// Generate implements Generator.
func (l *License) Generate(ctx context.Context, cfg config.Config) (string, error) {
	id := cfg.StringOr("license", DefaultLicense)
	year := LicenseYear(cfg)
	holder := CopyrightHolder(cfg)

	key := strings.ToLower(strings.TrimSpace(id))
	if text, ok := inlineLicenses[key]; ok {
		return Substitute(text, year, holder), nil
	}

	ghKey, ok := fetchedLicenses[key]
	if !ok {
		return UnsupportedLicense(id, "unknown license identifier"), nil
	}
	if l.opts.Licenses == nil {
		return UnsupportedLicense(id, "license templates cannot be fetched offline"), nil
	}

	lic, err := l.opts.Licenses.FetchLicense(ctx, ghKey, false)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeFetchFailed, err, "fetch license %s", ghKey)
		l.opts.logger().Debug("license fetch failed", "license", id, "code", errors.GetCode(err), "error", err)
		return UnsupportedLicense(id, "the license template could not be fetched"), nil
	}
	return Substitute(lic.Body, year, holder), nil
}

// LicenseYear is the first four characters of `published`, or the current
// year when the key is absent.
func LicenseYear(cfg config.Config) string {
	if y, err := cfg.Year(); err == nil && y != "" {
		return y
	}
	return strconv.Itoa(time.Now().Year())
}

// CopyrightHolder is the first contributor's name, or [DefaultHolder].
func CopyrightHolder(cfg config.Config) string {
	if contribs := cfg.Contributors(); len(contribs) > 0 && contribs[0].Name != "" {
		return contribs[0].Name
	}
	return DefaultHolder
}

// Substitute replaces the year and holder placeholders used by the inline
// texts and the GitHub license templates.
func Substitute(text, year, holder string) string {
	pairs := make([]string, 0, len(placeholders)*2)
	for _, p := range placeholders {
		v := year
		if p.holder {
			v = holder
		}
		pairs = append(pairs, p.token, v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// UnsupportedLicense is the LICENSE content written when id cannot be rendered.
func UnsupportedLicense(id, reason string) string {
	return fmt.Sprintf("License %q could not be generated: %s.\n\nSupported licenses: %s\n",
		id, reason, strings.Join(SupportedLicenses, ", "))
}

// LicenseID returns the configured license identifier or [DefaultLicense].
func LicenseID(cfg config.Config) string {
	return cfg.StringOr("license", DefaultLicense)
}

const mitText = `MIT License

Copyright (c) [year] [fullname]

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`

const ccByText = `Creative Commons Attribution 4.0 International (CC BY 4.0)

Copyright (c) [year] [fullname]

This work is licensed under the Creative Commons Attribution 4.0
International License.

You are free to:
  Share - copy and redistribute the material in any medium or format
  Adapt - remix, transform, and build upon the material for any purpose,
          even commercially.

Under the following terms:
  Attribution - You must give appropriate credit, provide a link to the
  license, and indicate if changes were made.

No additional restrictions - You may not apply legal terms or technological
measures that legally restrict others from doing anything the license permits.

Full legal code: https://creativecommons.org/licenses/by/4.0/legalcode
`

const ccBySAText = `Creative Commons Attribution-ShareAlike 4.0 International (CC BY-SA 4.0)

Copyright (c) [year] [fullname]

This work is licensed under the Creative Commons Attribution-ShareAlike 4.0
International License.

You are free to:
  Share - copy and redistribute the material in any medium or format
  Adapt - remix, transform, and build upon the material for any purpose,
          even commercially.

Under the following terms:
  Attribution - You must give appropriate credit, provide a link to the
  license, and indicate if changes were made.
  ShareAlike - If you remix, transform, or build upon the material, you must
  distribute your contributions under the same license as the original.

Full legal code: https://creativecommons.org/licenses/by-sa/4.0/legalcode
`

const ccByNCText = `Creative Commons Attribution-NonCommercial 4.0 International (CC BY-NC 4.0)

Copyright (c) [year] [fullname]

This work is licensed under the Creative Commons Attribution-NonCommercial 4.0
International License.

You are free to:
  Share - copy and redistribute the material in any medium or format
  Adapt - remix, transform, and build upon the material.

Under the following terms:
  Attribution - You must give appropriate credit, provide a link to the
  license, and indicate if changes were made.
  NonCommercial - You may not use the material for commercial purposes.

Full legal code: https://creativecommons.org/licenses/by-nc/4.0/legalcode
`

const cc0Text = `CC0 1.0 Universal (CC0 1.0) Public Domain Dedication

[fullname] ([year]) has dedicated this work to the public domain by waiving
all of their rights to the work worldwide under copyright law, including all
related and neighboring rights, to the extent allowed by law.

You can copy, modify, distribute and perform the work, even for commercial
purposes, all without asking permission.

Full legal code: https://creativecommons.org/publicdomain/zero/1.0/legalcode
`
