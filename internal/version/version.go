package version

// Version is the current pyp release.
const Version = "0.4.0"

// FullVersion returns the version with a v prefix.
func FullVersion() string {
	return "v" + Version
}
