package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFiles are the dotenv files consulted, in order, by [LoadEnv].
var EnvFiles = []string{".env", ".env.local"}

// Environment variables read by autoreadme.
const (
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvCacheDir    = "AUTOREADME_CACHE_DIR"
)

// LoadEnv loads the dotenv files that exist under dir into the process
// environment. Variables already set in the environment are never
// overridden. It returns the files that were loaded.
func LoadEnv(dir string) ([]string, error) {
	var loaded []string
	for _, name := range EnvFiles {
		path := filepath.Join(dir, name)
		if !fileExists(path) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, err
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}

// GitHubToken returns the token used for GitHub API calls and tag pushes.
func GitHubToken() string {
	return os.Getenv(EnvGitHubToken)
}
