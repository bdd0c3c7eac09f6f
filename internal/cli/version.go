package cli

import (
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const defaultModulePath = "github.com/aidanlsb/jot"

// Set by ldflags for release binaries; empty for local builds.
var (
	buildVersion = ""
	buildCommit  = ""
	buildDate    = ""
)

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

func newVersionCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show jot version and build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentVersionInfo()

			if a.JSON {
				outputSuccess(a, info, nil)
				return nil
			}

			a.printf("jot %s\n", info.Version)
			if info.Commit != "" {
				a.printf("commit: %s\n", info.Commit)
			}
			if info.CommitTime != "" {
				a.printf("commit_time: %s\n", info.CommitTime)
			}
			a.printf("go: %s (%s)\n", info.GoVersion, info.Platform)
			if info.Modified {
				a.println("modified: true")
			}
			return nil
		},
	}
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if ok && bi != nil {
		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		info.Version = normalizeVersion(bi.Main.Version)
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.time":
				info.CommitTime = s.Value
			case "vcs.modified":
				info.Modified = strings.EqualFold(s.Value, "true")
			}
		}
	}

	if info.Version == "devel" && buildVersion != "" {
		info.Version = normalizeVersion(buildVersion)
	}
	if info.Commit == "" {
		info.Commit = buildCommit
	}
	if info.CommitTime == "" {
		info.CommitTime = buildDate
	}
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}
