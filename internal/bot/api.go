package bot

import (
	"tribelands/internal/app"
	"tribelands/internal/domain"
)

// Brain is the interface all bot strategies implement. A strategy receives
// the match state and the legal-action descriptors for its participant and
// returns the submission to feed through the normal dispatcher path.
type Brain interface {
	ChooseAction(m *domain.Match, participantID string, legal []app.Action) (app.ActionSubmission, error)
}
