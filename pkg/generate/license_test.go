package generate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/integrations/github"
)

type fakeLicenses struct {
	bodies map[string]string
	calls  []string
}

func (f *fakeLicenses) FetchLicense(ctx context.Context, key string, refresh bool) (*github.License, error) {
	f.calls = append(f.calls, key)
	body, ok := f.bodies[key]
	if !ok {
		return nil, fmt.Errorf("no license %s", key)
	}
	return &github.License{Key: key, Body: body}, nil
}

func TestLicenseDefaultsToMIT(t *testing.T) {
	cfg := testConfig(t, datasetYAML)

	out, err := NewLicense(Options{}).Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !strings.HasPrefix(out, "MIT License\n\nCopyright (c) 2025 Dr. Test Author\n") {
		t.Errorf("unexpected MIT header:\n%s", out)
	}
}

func TestLicenseYearIsFirstFourChars(t *testing.T) {
	for _, published := range []string{"2019-03-01", "2021", "1999/12/31"} {
		cfg := config.Config{"published": published}
		out, _ := NewLicense(Options{}).Generate(context.Background(), cfg)
		if want := "Copyright (c) " + published[:4] + " Author"; !strings.Contains(out, want) {
			t.Errorf("published %q: LICENSE lacks %q", published, want)
		}
	}

	current := strconv.Itoa(time.Now().Year())
	if got := LicenseYear(config.Config{}); got != current {
		t.Errorf("LicenseYear() without published = %q, want %q", got, current)
	}
}

func TestLicenseInlineCreativeCommons(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"CC-BY-4.0", "Creative Commons Attribution 4.0 International"},
		{"cc-by-sa-4.0", "Attribution-ShareAlike 4.0"},
		{"CC-BY-NC-4.0", "NonCommercial"},
		{"CC0-1.0", "Dr. Test Author (2025) has dedicated this work"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			cfg := testConfig(t, datasetYAML)
			cfg["license"] = tt.id
			src := &fakeLicenses{}

			out, err := NewLicense(Options{Licenses: src}).Generate(context.Background(), cfg)
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("LICENSE lacks %q:\n%s", tt.want, out)
			}
			if len(src.calls) != 0 {
				t.Errorf("inline license should not be fetched, calls = %v", src.calls)
			}
		})
	}
}

func TestLicenseFetched(t *testing.T) {
	src := &fakeLicenses{bodies: map[string]string{
		"apache-2.0": "Copyright [yyyy] [name of copyright owner]",
		"gpl-3.0":    "Copyright (C) <year>  <name of author>",
	}}
	cfg := testConfig(t, datasetYAML)

	cfg["license"] = "Apache-2.0"
	out, _ := NewLicense(Options{Licenses: src}).Generate(context.Background(), cfg)
	if out != "Copyright 2025 Dr. Test Author" {
		t.Errorf("Apache-2.0 = %q", out)
	}

	cfg["license"] = "GPL-3.0"
	out, _ = NewLicense(Options{Licenses: src}).Generate(context.Background(), cfg)
	if out != "Copyright (C) 2025  Dr. Test Author" {
		t.Errorf("GPL-3.0 = %q", out)
	}
}

func TestLicenseFallbackText(t *testing.T) {
	tests := []struct {
		name string
		id   string
		src  LicenseSource
	}{
		{"unknown id", "WTFPL", &fakeLicenses{}},
		{"fetch failure", "MPL-2.0", &fakeLicenses{}},
		{"offline", "BSD-3-Clause", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{"license": tt.id}
			out, err := NewLicense(Options{Licenses: tt.src}).Generate(context.Background(), cfg)
			if err != nil {
				t.Fatalf("fallback must not be an error, got %v", err)
			}
			if !strings.HasPrefix(out, fmt.Sprintf("License %q could not be generated", tt.id)) {
				t.Errorf("unexpected fallback:\n%s", out)
			}
			if !strings.Contains(out, "Supported licenses: MIT, Apache-2.0") {
				t.Errorf("fallback should list supported ids:\n%s", out)
			}
		})
	}
}

func TestSubstitute(t *testing.T) {
	got := Substitute("[year] [yyyy] <year> [fullname] [name of copyright owner] <name of author>", "2024", "Ada")
	if want := "2024 2024 2024 Ada Ada Ada"; got != want {
		t.Errorf("Substitute() = %q, want %q", got, want)
	}
}

func TestCopyrightHolder(t *testing.T) {
	if got := CopyrightHolder(config.Config{}); got != DefaultHolder {
		t.Errorf("CopyrightHolder(empty) = %q", got)
	}
	cfg := config.Config{"contributors": []any{map[string]any{"name": "Grace Hopper"}}}
	if got := CopyrightHolder(cfg); got != "Grace Hopper" {
		t.Errorf("CopyrightHolder() = %q", got)
	}
}
