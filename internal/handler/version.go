package handler

import (
	"net/http"
	"runtime"
	"runtime/debug"
)

// Version is stamped at build time with -ldflags "-X .../handler.Version=..."
var Version = ""

type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Revision  string `json:"revision,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// HandleVersion reports what is deployed. A linker-stamped Version wins over
// configured, which wins over "dev"; the revision comes from the embedded vcs
// build settings.
func HandleVersion(configured string) http.HandlerFunc {
	info := buildVersionInfo(configured, debug.ReadBuildInfo)
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

func buildVersionInfo(configured string, read func() (*debug.BuildInfo, bool)) VersionInfo {
	info := VersionInfo{Version: firstNonEmpty(Version, configured, "dev"), GoVersion: runtime.Version()}

	bi, ok := read()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.BuiltAt = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
