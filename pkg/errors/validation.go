package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateArtifactPath validates the relative path an artifact is written to.
// Artifacts always land inside the output directory, so the rules reject
// anything that could escape it:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateArtifactPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "artifact path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "artifact path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "artifact path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidInput, "artifact path must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidInput, "artifact path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "artifact path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// pythonPackageNameRegex matches valid Python package names (PEP 508).
var pythonPackageNameRegex = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidatePythonPackageName validates a Python package name per PEP 508.
func ValidatePythonPackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "package name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "package name too long (max 256 characters)")
	}
	if !pythonPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid Python package name: %q", name)
	}
	return nil
}

// versionRegex accepts the loose version strings found in project configs:
// "1", "1.0", "2.0.0", "1.0.0-rc.1", "2025.01".
var versionRegex = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z.+-]*$`)

// ValidateVersion checks that a version string is usable as a git tag suffix.
func ValidateVersion(version string) error {
	if version == "" {
		return New(ErrCodeInvalidInput, "version cannot be empty")
	}
	if !versionRegex.MatchString(version) {
		return New(ErrCodeInvalidInput, "invalid version: %q", version)
	}
	return nil
}
