package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/stratum-research/autoreadme/pkg/config"
)

// DatasetCard renders dataset_card.json, the metadata block of a Hugging
// Face dataset card.
type DatasetCard struct{}

type cardAuthor struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
	ORCID       string `json:"orcid"`
}

type card struct {
	Title       string       `json:"title"`
	PrettyName  string       `json:"pretty_name"`
	Version     string       `json:"version"`
	Language    []string     `json:"language"`
	License     string       `json:"license"`
	Tags        []string     `json:"tags"`
	Description string       `json:"description"`
	Authors     []cardAuthor `json:"authors"`
}

// Name implements Generator.
func (DatasetCard) Name() string { return DatasetCardFile }

// Generate implements Generator.
func (DatasetCard) Generate(ctx context.Context, cfg config.Config) (string, error) {
	f, err := requireAll(cfg, "title", "version")
	if err != nil {
		return "", err
	}

	c := card{
		Title:       f["title"],
		PrettyName:  strings.ToLower(f["title"]),
		Version:     f["version"],
		Language:    cfg.Strings("language"),
		License:     strings.ToLower(LicenseID(cfg)),
		Tags:        nonNil(cfg.Strings("tags")),
		Description: cfg.String("description"),
		Authors:     []cardAuthor{},
	}
	if len(c.Language) == 0 {
		c.Language = []string{"en"}
	}
	for _, a := range cfg.Contributors() {
		c.Authors = append(c.Authors, cardAuthor{
			Name:        a.Name,
			Email:       a.Email,
			Affiliation: a.Affiliation,
			ORCID:       a.ORCID,
		})
	}
	return marshalIndent(c)
}

// Zenodo upload types keyed by project type.
var uploadTypes = map[string]string{
	config.TypeDataset:       "dataset",
	config.TypePythonPackage: "software",
	config.TypeResearch:      "publication",
}

// UploadType maps a project type to a Zenodo upload type. Matching is
// case-insensitive; unknown and empty types map to "dataset".
func UploadType(projectType string) string {
	if t, ok := uploadTypes[strings.ToLower(strings.TrimSpace(projectType))]; ok {
		return t
	}
	return "dataset"
}

// Zenodo renders .zenodo.json, the metadata Zenodo reads when archiving a
// GitHub release.
type Zenodo struct{}

type zenodoCreator struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	ORCID       string `json:"orcid,omitempty"`
}

type zenodoLicense struct {
	ID string `json:"id"`
}

type relatedIdentifier struct {
	Identifier   string `json:"identifier"`
	Relation     string `json:"relation"`
	ResourceType string `json:"resource_type"`
}

type zenodoMetadata struct {
	UploadType         string              `json:"upload_type"`
	PublicationDate    string              `json:"publication_date"`
	Title              string              `json:"title"`
	Creators           []zenodoCreator     `json:"creators"`
	Description        string              `json:"description"`
	License            zenodoLicense       `json:"license"`
	Keywords           []string            `json:"keywords"`
	Version            string              `json:"version"`
	DOI                string              `json:"doi,omitempty"`
	RelatedIdentifiers []relatedIdentifier `json:"related_identifiers,omitempty"`
}

// Name implements Generator.
func (Zenodo) Name() string { return ZenodoFile }

// Generate implements Generator.
func (Zenodo) Generate(ctx context.Context, cfg config.Config) (string, error) {
	f, err := requireAll(cfg, "title", "published")
	if err != nil {
		return "", err
	}

	m := zenodoMetadata{
		UploadType:      UploadType(cfg.String("type")),
		PublicationDate: f["published"],
		Title:           f["title"],
		Creators:        []zenodoCreator{},
		Description:     cfg.String("description"),
		License:         zenodoLicense{ID: LicenseID(cfg)},
		Keywords:        nonNil(cfg.Strings("tags")),
		Version:         cfg.String("version"),
		DOI:             cfg.String("doi"),
	}
	for _, c := range cfg.Contributors() {
		m.Creators = append(m.Creators, zenodoCreator{
			Name:        FormatCreatorName(c.Name),
			Affiliation: c.Affiliation,
			ORCID:       c.ORCID,
		})
	}
	if link := cfg.String("github_link"); link != "" {
		m.RelatedIdentifiers = append(m.RelatedIdentifiers, relatedIdentifier{
			Identifier: link, Relation: "isSupplementTo", ResourceType: "software",
		})
	}
	if link := cfg.String("huggingface_link"); link != "" {
		m.RelatedIdentifiers = append(m.RelatedIdentifiers, relatedIdentifier{
			Identifier: link, Relation: "isIdenticalTo", ResourceType: "dataset",
		})
	}
	return marshalIndent(m)
}

// marshalIndent encodes v with two-space indentation and without HTML
// escaping, so URLs and "<" in descriptions survive verbatim.
func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
