package ecs

import "fmt"

type System interface {
	Update(w *World)
}

// Phase selects when a system runs inside a frame.
type Phase int

const (
	// PhaseFixedUpdate runs zero or more times per frame at the fixed step.
	PhaseFixedUpdate Phase = iota
	// PhaseUpdate runs once per frame.
	PhaseUpdate
	// PhaseLateUpdate runs once per frame after every Update system.
	PhaseLateUpdate
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseFixedUpdate:
		return "fixed_update"
	case PhaseUpdate:
		return "update"
	case PhaseLateUpdate:
		return "late_update"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type Scheduler struct {
	phases [phaseCount][]System
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add appends a system to the Update phase.
func (s *Scheduler) Add(system System) {
	s.AddTo(PhaseUpdate, system)
}

// AddTo appends a system to the given phase.
func (s *Scheduler) AddTo(phase Phase, system System) {
	if system == nil || phase < 0 || phase >= phaseCount {
		return
	}
	s.phases[phase] = append(s.phases[phase], system)
}

// Run executes every system of a phase in insertion order.
func (s *Scheduler) Run(phase Phase, w *World) {
	if phase < 0 || phase >= phaseCount {
		return
	}
	for _, system := range s.phases[phase] {
		system.Update(w)
	}
}
