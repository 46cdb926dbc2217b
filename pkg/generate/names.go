package generate

import "strings"

// FormatCreatorName rewrites "First Last" as "Last, First".
//
// The final whitespace-separated token is taken as the surname and the rest
// as given names, so "Ada King Lovelace" becomes "Lovelace, Ada King".
// Single-token and blank names are returned unchanged. Names with particles
// or multi-word surnames are not recognized.
func FormatCreatorName(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return name
	}
	last := fields[len(fields)-1]
	return last + ", " + strings.Join(fields[:len(fields)-1], " ")
}

// LastName returns the final whitespace-separated token of name.
func LastName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
