package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/errors"
)

// Citation renders citation.bib.
//
// A single @dataset record is produced unless both
// `github_repo_zenodo_doi` and `dataset_zenodo_doi` are set, in which case
// a @software record for the code and a @dataset record for the data are
// emitted.
type Citation struct{}

// Name implements Generator.
func (Citation) Name() string { return CitationFile }

// Generate implements Generator.
func (Citation) Generate(ctx context.Context, cfg config.Config) (string, error) {
	if cfg.Has("github_repo_zenodo_doi") && cfg.Has("dataset_zenodo_doi") {
		return dualCitation(cfg)
	}
	return singleCitation(cfg)
}

// CitationKey derives the single-record key: the title lower-cased with
// spaces and hyphens replaced by underscores.
func CitationKey(title string) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(title))
}

// DualCitationKey derives the key prefix shared by the dual records:
// first author's surname, year, and the title with spaces and hyphens removed.
func DualCitationKey(lastName, year, title string) string {
	compact := strings.NewReplacer(" ", "", "-", "").Replace(strings.ToLower(title))
	return strings.ToLower(lastName) + year + compact
}

func singleCitation(cfg config.Config) (string, error) {
	f, err := requireAll(cfg, "title", "tagline", "version")
	if err != nil {
		return "", err
	}
	year, err := cfg.Year()
	if err != nil {
		return "", err
	}

	names := make([]string, 0)
	for _, c := range cfg.Contributors() {
		names = append(names, c.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@dataset{%s_data,\n", CitationKey(f["title"]))
	fmt.Fprintf(&b, "  title={%s: %s},\n", f["title"], f["tagline"])
	fmt.Fprintf(&b, "  author={%s},\n", strings.Join(names, " and "))
	fmt.Fprintf(&b, "  year={%s},\n", year)
	fmt.Fprintf(&b, "  version={%s},\n", f["version"])
	fmt.Fprintf(&b, "  doi={%s},\n", singleDOI(cfg))
	fmt.Fprintf(&b, "  url={%s}\n", cfg.String("huggingface_link"))
	b.WriteString("}\n")
	return b.String(), nil
}

// singleDOI picks the DOI for a single record. When only one of the dual
// identifiers is set it is used ahead of `doi`.
func singleDOI(cfg config.Config) string {
	for _, key := range []string{"github_repo_zenodo_doi", "dataset_zenodo_doi", "doi"} {
		if v := cfg.String(key); v != "" {
			return v
		}
	}
	return ""
}

func dualCitation(cfg config.Config) (string, error) {
	f, err := requireAll(cfg, "title", "tagline", "version")
	if err != nil {
		return "", err
	}
	year, err := cfg.Year()
	if err != nil {
		return "", err
	}
	contribs := cfg.Contributors()
	if len(contribs) == 0 {
		return "", errors.MissingField("contributors")
	}
	author := contribs[0]
	key := DualCitationKey(LastName(author.Name), year, f["title"])
	note := fmt.Sprintf("Version %s, %s", f["version"], author.Affiliation)

	record := func(kind, suffix, title, url, doi string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "@%s{%s%s,\n", kind, key, suffix)
		fmt.Fprintf(&b, "  author = {%s},\n", author.Name)
		fmt.Fprintf(&b, "  title  = {%s},\n", title)
		fmt.Fprintf(&b, "  year   = {%s},\n", year)
		fmt.Fprintf(&b, "  url    = {%s},\n", url)
		fmt.Fprintf(&b, "  doi    = {%s},\n", doi)
		fmt.Fprintf(&b, "  note   = {%s}\n", note)
		b.WriteString("}")
		return b.String()
	}

	code := record("software", "code", f["title"]+": Code",
		cfg.String("github_link"), cfg.String("github_repo_zenodo_doi"))
	data := record("dataset", "data", f["title"]+": "+f["tagline"],
		HuggingFaceURL(cfg), cfg.String("dataset_zenodo_doi"))
	return code + "\n\n" + data + "\n", nil
}

// HuggingFaceURL builds https://huggingface.co/<type>/<repo> from the
// `hugging_face` mapping, falling back to `huggingface_link`.
func HuggingFaceURL(cfg config.Config) string {
	if hf := cfg.Map("hugging_face"); hf != nil && hf.Has("repo") {
		kind := hf.StringOr("type", "datasets")
		return fmt.Sprintf("https://huggingface.co/%s/%s", kind, hf.String("repo"))
	}
	return cfg.String("huggingface_link")
}

// requireAll reads required scalar keys in order and fails on the first
// missing one.
func requireAll(cfg config.Config, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, err := cfg.Require(k)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
