package version

import (
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// Version information for the cclex CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
	GoVersion  string `json:"go_version"`
}

// Get returns the trimmed build metadata.
func Get() Info {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	return Info{
		Version:    v,
		GitCommit:  strings.TrimSpace(GitCommit),
		GitMessage: strings.TrimSpace(GitMessage),
		BuildDate:  strings.TrimSpace(BuildDate),
		GoVersion:  runtime.Version(),
	}
}

// Colored renders Version with major, minor and patch in distinct colors.
// A version that is not dotted semver is returned unchanged.
func Colored(enabled bool) string {
	v := Get().Version
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if !enabled || len(parts) != 3 {
		return v
	}
	colors := []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor}
	for i, p := range parts {
		c := *colors[i]
		c.EnableColor()
		parts[i] = c.Sprint(p)
	}
	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
