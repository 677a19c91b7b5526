package reduce

import (
	"context"
	"fmt"
)

// RoundReport summarizes one round of the meta-driver: one pass over
// every configured strategy, in order.
type RoundReport struct {
	Round     int
	PerStrat  []StrategyReport
	Successes int
}

// StrategyReport summarizes a single strategy's run within a round.
type StrategyReport struct {
	Strategy  string
	Successes int
}

// Driver rotates a fixed, ordered list of strategies across rounds
// until a full round blanks nothing (spec.md §4.4, "Meta-Driver").
// Termination is guaranteed: every kept attempt strictly reduces the
// non-blank line count, a quantity bounded below by zero.
type Driver struct {
	engine     *Engine
	strategies []Strategy
	onRound    func(RoundReport)
}

// NewDriver wires an engine and the ordered strategies to rotate. At
// least one strategy is required.
func NewDriver(engine *Engine, strategies []Strategy) (*Driver, error) {
	if len(strategies) == 0 {
		return nil, errNoStrategies
	}

	return &Driver{engine: engine, strategies: strategies}, nil
}

// OnRound installs a callback invoked after every round completes,
// for progress reporting. Optional.
func (d *Driver) OnRound(fn func(RoundReport)) {
	d.onRound = fn
}

// Run repeats rounds until one yields zero successes across every
// strategy, then returns the total rounds executed and the grand
// total of successful chomps.
func (d *Driver) Run(ctx context.Context) (rounds int, totalSuccesses int, err error) {
	for {
		if err := ctx.Err(); err != nil {
			return rounds, totalSuccesses, fmt.Errorf("reduction cancelled: %w", err)
		}

		report := RoundReport{Round: rounds + 1}

		for _, strategy := range d.strategies {
			successes, err := d.engine.ExecuteStrategy(ctx, strategy)
			if err != nil {
				return rounds, totalSuccesses, fmt.Errorf("strategy %s: %w", strategy.Name(), err)
			}

			report.PerStrat = append(report.PerStrat, StrategyReport{
				Strategy:  strategy.Name(),
				Successes: successes,
			})
			report.Successes += successes
		}

		rounds++
		totalSuccesses += report.Successes

		if d.onRound != nil {
			d.onRound(report)
		}

		if report.Successes == 0 {
			return rounds, totalSuccesses, nil
		}
	}
}
