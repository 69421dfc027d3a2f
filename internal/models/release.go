package models

import "time"

const ReleaseDateLayout = "2006-01-02"

// ReleaseSection is the changelog block written for one release.
type ReleaseSection struct {
	Version    string
	Date       time.Time
	ProjectURL string
	Commits    []Commit
}

// Stage marks how far a release cycle has progressed. Each command moves
// the cycle at most one stage forward.
type Stage string

const (
	StageVerified         Stage = "verified"
	StageVersionWritten   Stage = "version_written"
	StageChangelogUpdated Stage = "changelog_updated"
	StagePublished        Stage = "published"
)

// PublishStep names one step of the publish sequence, used for progress reporting.
type PublishStep string

const (
	StepCleanup PublishStep = "cleanup"
	StepCheck   PublishStep = "check"
	StepBuild   PublishStep = "build"
	StepUpload  PublishStep = "upload"
	StepTag     PublishStep = "tag"
	StepPush    PublishStep = "push"
)
