package errors

import (
	"testing"
)

func TestValidateArtifactPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"readme", "README.md", false},
		{"hidden file", ".zenodo.json", false},
		{"nested workflow", ".github/workflows/release.yml", false},
		{"dotted name", "citation.v2.bib", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../README.md", true},
		{"nested traversal", "docs/../../x", true},
		{"backslash", "docs\\README.md", true},
		{"null byte", "README\x00.md", true},
		{"newline", "README\n.md", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArtifactPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArtifactPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateArtifactPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://github.com/org/repo", false},
		{"http", "http://example.com", false},
		{"empty", "", true},
		{"ssh", "git@github.com:org/repo.git", true},
		{"file", "file:///etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePythonPackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "requests", false},
		{"dash", "my-dataset", false},
		{"underscore", "my_dataset", false},
		{"dot", "zope.interface", false},
		{"single char", "a", false},

		{"empty", "", true},
		{"space", "my dataset", true},
		{"leading dash", "-pkg", true},
		{"trailing dot", "pkg.", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePythonPackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePythonPackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateVersion(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"1", false},
		{"1.0", false},
		{"2.0.0", false},
		{"1.0.0-rc.1", false},
		{"", true},
		{"1.0 beta", true},
		{"../1.0", true},
		{"-1.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
