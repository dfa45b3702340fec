package nakama

import (
	"github.com/heroiclabs/nakama-common/runtime"

	"tribelands/internal/ports"
)

// dispatcherPublisher implements ports.Publisher over a match dispatcher.
// Broadcasts are fire-and-forget; delivery failures are logged, never
// propagated to the action that triggered them.
type dispatcherPublisher struct {
	dispatcher runtime.MatchDispatcher
	logger     runtime.Logger
}

// NewDispatcherPublisher wraps a match dispatcher as a ports.Publisher.
func NewDispatcherPublisher(dispatcher runtime.MatchDispatcher, logger runtime.Logger) ports.Publisher {
	return &dispatcherPublisher{dispatcher: dispatcher, logger: logger}
}

func (p *dispatcherPublisher) Publish(matchID string, snapshot []byte) {
	if err := p.dispatcher.BroadcastMessage(OpMatchState, snapshot, nil, nil, true); err != nil {
		p.logger.Error("Publish: failed to broadcast state for match %s: %v", matchID, err)
	}
}
