package provisioning

import (
	"errors"
	"fmt"
)

// WorkflowState is a checkpoint in a provisioning run. A run only moves to the
// next state after the stage guarding that transition succeeded.
type WorkflowState string

const (
	StateInitial                  WorkflowState = "Initial"
	StateCredentialsConfigured    WorkflowState = "CredentialsConfigured"
	StateZoneConfirmed            WorkflowState = "ZoneConfirmed"
	StatePropagationChecked       WorkflowState = "PropagationChecked"
	StateZonePreconditionVerified WorkflowState = "ZonePreconditionVerified"
	StateToolsInstalled           WorkflowState = "ToolsInstalled"
	StateKeyReady                 WorkflowState = "KeyReady"
	StateManifestGenerated        WorkflowState = "ManifestGenerated"
	StateInstallationComplete     WorkflowState = "InstallationComplete"
	StateAccessConfigDeployed     WorkflowState = "AccessConfigDeployed"
	StateFailed                   WorkflowState = "Failed"
)

// ErrInvalidTransition is returned when a plan has no transition out of the current state.
var ErrInvalidTransition = errors.New("invalid workflow transition")

// Step is one edge of a plan: running Phase moves the run from From to To.
type Step struct {
	From  WorkflowState
	To    WorkflowState
	Phase Phase
}

// Plan is the fixed, totally ordered list of transitions for one kind of run.
type Plan struct {
	Name  string
	Steps []Step
}

// NewPlan chains phases into a plan. states lists the state reached after each
// phase; the first phase always starts from StateInitial.
func NewPlan(name string, states []WorkflowState, phases []Phase) (*Plan, error) {
	if len(states) != len(phases) {
		return nil, fmt.Errorf("plan %s: %d states for %d phases", name, len(states), len(phases))
	}

	plan := &Plan{Name: name}
	from := StateInitial
	for i, phase := range phases {
		plan.Steps = append(plan.Steps, Step{From: from, To: states[i], Phase: phase})
		from = states[i]
	}
	return plan, nil
}

// Final returns the state a successful run ends in.
func (p *Plan) Final() WorkflowState {
	if len(p.Steps) == 0 {
		return StateInitial
	}
	return p.Steps[len(p.Steps)-1].To
}

// StepFrom returns the step leaving state.
func (p *Plan) StepFrom(state WorkflowState) (Step, bool) {
	for _, s := range p.Steps {
		if s.From == state {
			return s, true
		}
	}
	return Step{}, false
}

// Transition computes the state that follows current given the outcome of the
// stage guarding it. It has no side effects.
//
// A stage error always yields StateFailed and a *StageError wrapping the cause.
func Transition(plan *Plan, current WorkflowState, stageErr error) (WorkflowState, error) {
	if current == StateFailed {
		return StateFailed, fmt.Errorf("%w: run already failed", ErrInvalidTransition)
	}

	step, ok := plan.StepFrom(current)
	if !ok {
		return StateFailed, fmt.Errorf("%w: no transition from %s in plan %s", ErrInvalidTransition, current, plan.Name)
	}

	if stageErr != nil {
		return StateFailed, &StageError{Stage: step.Phase.Name(), From: current, Err: stageErr}
	}

	return step.To, nil
}
