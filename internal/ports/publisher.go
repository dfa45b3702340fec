package ports

// Publisher fans a match state snapshot out to every connected viewer of the
// match. Publishing is fire-and-forget; implementations must not block the
// action that triggered it on delivery.
type Publisher interface {
	Publish(matchID string, snapshot []byte)
}
