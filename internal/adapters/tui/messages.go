package tui

import (
	"time"

	"go.trai.ch/crxbuild/internal/core/domain"
)

// MsgWatchStart is sent once the watcher observes Root.
type MsgWatchStart struct {
	Root string
}

// MsgBuildStart is sent when a build attempt begins.
type MsgBuildStart struct {
	Time time.Time
}

// MsgBuildFinish is sent when a build attempt ends.
type MsgBuildFinish struct {
	Report domain.BuildReport
	Time   time.Time
}

// MsgLog carries one log line to print above the view.
type MsgLog struct {
	Line string
}
