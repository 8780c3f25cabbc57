package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata for the fathom CLI. Each component can be overridden at
// build time via -ldflags, e.g.
//
//	-X fathom/internal/version.Patch=7 -X fathom/internal/version.Pre=
var (
	Major = "0"
	Minor = "1"
	Patch = "0"

	// Pre is the pre-release tag appended after a dash; empty for releases.
	Pre = "dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var componentColors = [...]*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// String renders the semantic version with one color per component,
// e.g. "0.1.0-dev".
func String() string {
	parts := [...]string{Major, Minor, Patch}
	colored := make([]string, len(parts))
	for i, p := range parts {
		colored[i] = componentColors[i].Sprint(p)
	}
	v := strings.Join(colored, ".")
	if Pre != "" {
		v += "-" + Pre
	}
	return v
}

// Full renders the version followed by whatever build metadata is present.
func Full() string {
	var sb strings.Builder
	sb.WriteString("fathom ")
	sb.WriteString(String())
	if GitCommit != "" {
		sb.WriteString("\ncommit: ")
		sb.WriteString(GitCommit)
	}
	if BuildDate != "" {
		sb.WriteString("\nbuilt:  ")
		sb.WriteString(BuildDate)
	}
	return sb.String()
}
