package engine

import "fmt"

// System is one step of game logic run by a Scheduler.
type System interface {
	Update(c *Context, dt float64) error
}

// SystemFunc adapts a function to System.
type SystemFunc func(c *Context, dt float64) error

func (f SystemFunc) Update(c *Context, dt float64) error {
	return f(c, dt)
}

// Scheduler runs systems in the order they were added. Its Update method
// is an UpdateFunc.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system, stopping at the first error.
func (s *Scheduler) Update(c *Context, dt float64) error {
	for i, system := range s.systems {
		if err := system.Update(c, dt); err != nil {
			return fmt.Errorf("engine: system %d (%T): %w", i, system, err)
		}
	}
	return nil
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
