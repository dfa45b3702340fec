package bot

import (
	"tribelands/internal/app"
	"tribelands/internal/domain"
)

// Agent represents an autonomous participant.
type Agent struct {
	ID       string // participant id the agent plays for
	Name     string
	Strategy Brain
}

// NewAgent builds an agent for a participant id using its identity's
// configured difficulty.
func NewAgent(participantID string) (*Agent, error) {
	identity := IdentityFor(participantID)
	brain, err := NewBrain(identity.Level())
	if err != nil {
		return nil, err
	}
	return &Agent{ID: participantID, Name: identity.DisplayName, Strategy: brain}, nil
}

// Play asks the agent to choose its action from the current legal set.
func (a *Agent) Play(m *domain.Match, legal []app.Action) (app.ActionSubmission, error) {
	return a.Strategy.ChooseAction(m, a.ID, legal)
}
