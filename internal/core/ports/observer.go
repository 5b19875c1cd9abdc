package ports

import "go.trai.ch/crxbuild/internal/core/domain"

// BuildObserver receives the progress of a watch session.
//
//go:generate mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks
type BuildObserver interface {
	// WatchStarted is called once the watcher observes root.
	WatchStarted(root string)
	// BuildStarted is called before every build attempt.
	BuildStarted()
	// BuildFinished is called after every build attempt, successful or not.
	BuildFinished(report domain.BuildReport)
}
