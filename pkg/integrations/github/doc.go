// Package github provides an HTTP client for the GitHub REST API.
//
// # Overview
//
// autoreadme only needs one endpoint: the license templates served at
// /licenses/{key}. The template body carries placeholders such as [year]
// and [fullname] which the license generator substitutes.
//
// # Usage
//
//	client := github.NewClient(backend, os.Getenv("GITHUB_TOKEN"), 7*24*time.Hour)
//	lic, err := client.FetchLicense(ctx, "apache-2.0", false)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(lic.Body)
//
// # Authentication
//
// A token is optional. Without one, the API allows 60 requests/hour, which
// is plenty since responses are cached.
//
// # URL Parsing
//
// [ParseRepoURL] recognizes github.com repository URLs in https, ssh and
// git:// forms. The automation handlers use it on `github_link` and on the
// origin remote.
package github
