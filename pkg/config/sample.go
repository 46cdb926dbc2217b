package config

import (
	"strings"
)

// Project types understood by the generators and integrations.
const (
	TypeDataset       = "dataset"
	TypePythonPackage = "python-package"
	TypeResearch      = "research"
)

// ProjectTypes lists the project types offered by `init --interactive`.
var ProjectTypes = []string{TypeDataset, TypePythonPackage, TypeResearch}

// SampleOptions customizes the scaffolded configuration.
type SampleOptions struct {
	Type    string
	License string
}

const sampleTemplate = `title: "My-Dataset"
version: "1.0"
published: "2025-01-01"
tagline: "A sample dataset for demonstration"
description: "This is a sample dataset description. Replace with your actual description."
doi: "10.5281/zenodo.123456"
type: "%TYPE%"
license: "%LICENSE%"

# Metadata for HuggingFace/README
language:
  - "en"
tags:
  - "machine-learning"
  - "dataset"
  - "sample"
size_categories:
  - "1K<n<10K"

logo_path: "config/assets/logo.png"
banner_path: "config/assets/banner.png"

# Links
github_link: "https://github.com/yourusername/your-repo"
huggingface_link: "https://huggingface.co/datasets/yourusername/your-dataset"
zenodo_link: "https://zenodo.org/record/123456"

# Author info
maintainer: "your.email@example.com"
contributors:
  - name: "Your Name"
    orcid: "0000-0000-0000-0000"
    email: "your.email@example.com"
    affiliation: "Your Organization"
    role: "creator"

# Release notes, keyed by version
changelog:
  "1.0":
    - "Initial release"
`

// AssetsReadme is written to config/assets/README.md by `init`.
const AssetsReadme = `# Assets Folder

Place your project assets here:
- ` + "`logo.png`" + ` - Your project logo (recommended: 150px height)
- ` + "`banner.png`" + ` - Banner image for README (recommended: 800px width)

These will be referenced in your README.md automatically.
`

// Sample returns the scaffolded configuration text.
func Sample(opts SampleOptions) string {
	if opts.Type == "" {
		opts.Type = TypeDataset
	}
	if opts.License == "" {
		opts.License = "MIT"
	}
	return strings.NewReplacer("%TYPE%", opts.Type, "%LICENSE%", opts.License).Replace(sampleTemplate)
}
