package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/api"
)

const feedRetryDelay = 5 * time.Second

type changeMsg struct{ change api.Change }

func (m changeMsg) route() string { return m.change.Table }

type feedClosedMsg struct{ err error }

// feedStartMsg asks the app to (re)open the change feed.
type feedStartMsg struct{}

// changeFeed relays backend change events into the program. Subscribe
// runs on its own goroutine; wait hands one event at a time to the update
// loop.
type changeFeed struct {
	events chan api.Change
	done   chan error
}

func startFeed(ctx context.Context, client *api.Client) *changeFeed {
	f := &changeFeed{
		events: make(chan api.Change, 64),
		done:   make(chan error, 1),
	}
	go func() {
		err := client.Subscribe(ctx, func(c api.Change) {
			select {
			case f.events <- c:
			case <-ctx.Done():
			}
		})
		f.done <- err
		close(f.events)
	}()
	return f
}

// wait blocks for the next change. It must be re-armed after every
// changeMsg.
func (f *changeFeed) wait() tea.Cmd {
	return func() tea.Msg {
		c, ok := <-f.events
		if !ok {
			return feedClosedMsg{err: <-f.done}
		}
		return changeMsg{change: c}
	}
}

func restartFeed() tea.Cmd {
	return tea.Tick(feedRetryDelay, func(time.Time) tea.Msg { return feedStartMsg{} })
}
