package models

// ProjectStatus is a snapshot of the packaging metadata reported by setup.py.
type ProjectStatus struct {
	Name    string
	URL     string
	Version string
}
