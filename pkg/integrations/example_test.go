package integrations_test

import (
	"fmt"

	"github.com/stratum-research/autoreadme/pkg/integrations"
	"github.com/stratum-research/autoreadme/pkg/integrations/github"
)

func ExampleNormalizePkgName() {
	fmt.Println(integrations.NormalizePkgName("Research_Tools"))
	fmt.Println(integrations.NormalizePkgName("  autoreadme "))
	// Output:
	// research-tools
	// autoreadme
}

func ExampleNormalizeRepoURL() {
	// git remotes come in several shapes; all map to the https form
	fmt.Println(integrations.NormalizeRepoURL("git@github.com:stratum-research/autoreadme.git"))
	fmt.Println(integrations.NormalizeRepoURL("ssh://git@github.com/stratum-research/autoreadme"))
	fmt.Println(integrations.NormalizeRepoURL("git+https://github.com/stratum-research/autoreadme.git"))
	// Output:
	// https://github.com/stratum-research/autoreadme
	// https://github.com/stratum-research/autoreadme
	// https://github.com/stratum-research/autoreadme
}

func Example_githubRepoURL() {
	owner, repo, ok := github.ParseRepoURL("git@github.com:stratum-research/autoreadme.git")
	fmt.Println(owner, repo, ok)
	fmt.Println(github.RepoURL(owner, repo))

	_, _, ok = github.ParseRepoURL("https://gitlab.com/stratum-research/autoreadme")
	fmt.Println(ok)
	// Output:
	// stratum-research autoreadme true
	// https://github.com/stratum-research/autoreadme
	// false
}
