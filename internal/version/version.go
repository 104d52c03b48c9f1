package version

import "runtime/debug"

// Get returns the VCS revision baked into the binary, or "unknown"
// when built outside a repository.
func Get() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	var revision, modified string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			if setting.Value == "true" {
				modified = "-dirty"
			}
		}
	}

	if revision == "" {
		return "unknown"
	}

	return revision + modified
}
