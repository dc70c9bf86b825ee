package pipeline

import "fmt"

// Step is one named stage applied to a value of type T.
type Step[T any] interface {
	Name() string
	Apply(v T) error
}

// StepFunc adapts a function to a Step.
type StepFunc[T any] struct {
	Label string
	Fn    func(v T) error
}

func (s StepFunc[T]) Name() string    { return s.Label }
func (s StepFunc[T]) Apply(v T) error { return s.Fn(v) }

// Pipeline chains multiple steps.
type Pipeline[T any] struct {
	steps []Step[T]
}

func New[T any](steps ...Step[T]) *Pipeline[T] {
	return &Pipeline[T]{steps: steps}
}

// Then appends steps and returns the pipeline.
func (p *Pipeline[T]) Then(steps ...Step[T]) *Pipeline[T] {
	p.steps = append(p.steps, steps...)
	return p
}

// Run applies every step in order and stops at the first failure.
func (p *Pipeline[T]) Run(v T) error {
	for _, step := range p.steps {
		if err := step.Apply(v); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
	}
	return nil
}

// Names lists the step names in order.
func (p *Pipeline[T]) Names() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
