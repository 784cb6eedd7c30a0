/*
Package display renders run progress to a terminal. It is an optional
collaborator: the engine drives it through the narrow game.Display
interface and runs identically when it is absent.
*/
package display

import (
	"log"

	"github.com/beka-birhanu/cavern-quest/cavern"
	"github.com/beka-birhanu/cavern-quest/config"
	"github.com/beka-birhanu/cavern-quest/game"
)

// Console writes colored run progress to a logger.
type Console struct {
	logger *log.Logger
}

// NewConsole creates a console display writing through logger.
func NewConsole(logger *log.Logger) *Console {
	return &Console{logger: logger}
}

// PhaseStarted announces the phase and draws the cavern grid.
func (c *Console) PhaseStarted(phase game.Phase, cv *cavern.Cavern, stepsBudget int) {
	c.logger.Printf("%s[INFO]%s entering %s phase on a %dx%d cavern", config.LogInfoColor, config.LogColorReset, phase, cv.Rows(), cv.Cols())
	if stepsBudget > 0 {
		c.logger.Printf("%s[INFO]%s steps before collapse: %d", config.LogInfoColor, config.LogColorReset, stepsBudget)
	}
	c.logger.Printf("cavern layout:\n%s", cv)
}

// MovedTo reports the new position.
func (c *Console) MovedTo(n *cavern.Node) {
	c.logger.Printf("%s[INFO]%s moved to (%d,%d)", config.ColorCyan, config.ColorReset, n.Tile().Row(), n.Tile().Col())
}

// StepsUpdated reports the remaining scram budget.
func (c *Console) StepsUpdated(remaining int) {
	c.logger.Printf("%s[INFO]%s steps remaining: %d", config.ColorCyan, config.ColorReset, remaining)
}

// GoldUpdated reports the running gold total and implied score.
func (c *Console) GoldUpdated(collected, score int) {
	c.logger.Printf("%s[INFO]%s gold: %d (score %d)", config.ColorYellow, config.ColorReset, collected, score)
}

// BonusUpdated reports the bonus multiplier implied by the hunt so far.
func (c *Console) BonusUpdated(factor float64) {
	c.logger.Printf("%s[INFO]%s bonus multiplier: %.2f", config.ColorYellow, config.ColorReset, factor)
}

// ShowError surfaces a run failure message.
func (c *Console) ShowError(msg string) {
	c.logger.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, msg)
}
