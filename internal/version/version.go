package version

import (
	"runtime/debug"
	"strings"
	"time"
)

const (
	defaultModule  = "pkt.systems/tabterm"
	unknownVersion = "v0.0.0-unknown"
)

// buildVersion is set via -ldflags "-X pkt.systems/tabterm/internal/version.buildVersion=...".
var buildVersion = ""

// Info describes the running binary.
type Info struct {
	Module    string
	Version   string
	GoVersion string
	Dirty     bool
}

// String renders "module version (go)".
func (i Info) String() string {
	var b strings.Builder
	b.WriteString(i.Module)
	b.WriteByte(' ')
	b.WriteString(i.Version)
	if i.GoVersion != "" {
		b.WriteString(" (")
		b.WriteString(i.GoVersion)
		b.WriteByte(')')
	}
	return b.String()
}

// Read collects version details from the linker flag and build info.
func Read() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		info = nil
	}
	return fromBuildInfo(info, buildVersion)
}

// Current returns the best available version string.
func Current() string {
	return Read().Version
}

func fromBuildInfo(info *debug.BuildInfo, override string) Info {
	out := Info{Module: defaultModule, Version: unknownVersion}
	if info != nil {
		if path := strings.TrimSpace(info.Main.Path); path != "" {
			out.Module = path
		}
		out.GoVersion = info.GoVersion
	}
	if v := strings.TrimSpace(override); v != "" {
		out.Version = strings.TrimSuffix(v, "+dirty")
		out.Dirty = strings.HasSuffix(v, "+dirty")
		return out
	}
	if info == nil {
		return out
	}
	if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
		out.Version = v
		return out
	}
	if v, dirty := pseudoVersion(info.Settings); v != "" {
		out.Version = v
		out.Dirty = dirty
	}
	return out
}

// pseudoVersion builds v0.0.0-<time>-<rev> from VCS stamps.
func pseudoVersion(settings []debug.BuildSetting) (string, bool) {
	var revision, vcsTime string
	var modified bool
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if revision == "" || vcsTime == "" {
		return "", false
	}
	parsed, err := time.Parse(time.RFC3339, vcsTime)
	if err != nil {
		return "", false
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	return "v0.0.0-" + parsed.UTC().Format("20060102150405") + "-" + revision, modified
}
