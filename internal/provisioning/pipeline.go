package provisioning

import (
	"fmt"
	"time"
)

// Run walks plan from StateInitial to its final state, one phase at a time.
// The first failing phase halts the run; nothing is rolled back.
func Run(ctx *Context, plan *Plan) error {
	start := time.Now()
	ctx.Observer.Printf("Starting %s run with %d stages...", plan.Name, len(plan.Steps))

	state := StateInitial
	ctx.Checkpoint = state

	for i := 0; state != plan.Final(); i++ {
		step, ok := plan.StepFrom(state)
		if !ok {
			ctx.Checkpoint = StateFailed
			return fmt.Errorf("%w: no transition from %s in plan %s", ErrInvalidTransition, state, plan.Name)
		}

		name := fmt.Sprintf("%s (%d/%d)", step.Phase.Name(), i+1, len(plan.Steps))
		phaseStart := time.Now()
		LogPhaseStart(ctx.Observer, name)

		stageErr := ctx.Err()
		if stageErr == nil {
			stageErr = step.Phase.Provision(ctx)
		}

		next, err := Transition(plan, state, stageErr)
		if err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			ctx.Checkpoint = next
			return err
		}

		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
		state = next
		ctx.Checkpoint = state
	}

	ctx.Observer.Printf("%s run reached %s in %v", plan.Name, state, time.Since(start).Round(time.Millisecond))
	return nil
}
