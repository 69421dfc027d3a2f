package models

import "strings"

type (
	// Commit is one first-parent log entry.
	Commit struct {
		ShortHash string
		Subject   string
	}

	// TagLookup is the result of looking for the most recent tag. Found is
	// false for a repository that has never been tagged.
	TagLookup struct {
		Name  string
		Found bool
	}

	// RevisionSpan selects every commit reachable from Head but not from Start.
	RevisionSpan struct {
		Start string
		Head  string
	}
)

func NewRevisionSpan(start string) RevisionSpan {
	return RevisionSpan{Start: start, Head: "HEAD"}
}

// String renders the span as a git range expression, e.g. "v1.0..HEAD".
func (s RevisionSpan) String() string {
	head := s.Head
	if head == "" {
		head = "HEAD"
	}
	return s.Start + ".." + head
}

// CommitURL builds the web link for a commit under the project URL.
func CommitURL(projectURL, hash string) string {
	return strings.TrimRight(projectURL, "/") + "/commit/" + hash
}
