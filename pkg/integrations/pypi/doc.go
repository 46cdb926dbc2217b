// Package pypi looks up project names on the Python Package Index.
//
// Before rendering a publish workflow, the PyPI automation handler asks
// whether the package name is free, already belongs to the repository being
// configured, or is held by someone else:
//
//	client := pypi.NewClient(backend, 24*time.Hour)
//	reg, err := client.Check(ctx, "my-dataset-tools", "https://github.com/lab/tools")
//
// [Client.FetchPackage] serves cached records; [Client.Check] always asks
// the index. Names are normalized following PEP 503.
package pypi
