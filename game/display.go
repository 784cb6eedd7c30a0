package game

import "github.com/beka-birhanu/cavern-quest/cavern"

// Display is the narrow event sink an optional renderer implements. The
// engine notifies it of phase changes, movement, and score updates, and
// behaves identically when no display is attached.
type Display interface {
	// PhaseStarted reports that a phase begins on the given cavern.
	// stepsBudget is zero for the FIND phase, which has no budget.
	PhaseStarted(phase Phase, c *cavern.Cavern, stepsBudget int)

	// MovedTo reports the new position after a move.
	MovedTo(n *cavern.Node)

	// StepsUpdated reports the remaining scram budget after a move.
	StepsUpdated(remaining int)

	// GoldUpdated reports the running gold total and the score it implies.
	GoldUpdated(collected, score int)

	// BonusUpdated reports the bonus multiplier implied by the steps taken
	// so far.
	BonusUpdated(factor float64)

	// ShowError surfaces a run failure message.
	ShowError(msg string)
}

// noopDisplay is the sink used when no display is attached.
type noopDisplay struct{}

func (noopDisplay) PhaseStarted(Phase, *cavern.Cavern, int) {}
func (noopDisplay) MovedTo(*cavern.Node)                    {}
func (noopDisplay) StepsUpdated(int)                        {}
func (noopDisplay) GoldUpdated(int, int)                    {}
func (noopDisplay) BonusUpdated(float64)                    {}
func (noopDisplay) ShowError(string)                        {}
