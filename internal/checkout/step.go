package checkout

import "fmt"

// Step is the position in the checkout. Steps are strictly linear:
// address, payment, review, then the terminal placed step.
type Step int

const (
	StepAddress Step = iota
	StepPayment
	StepReview
	StepPlaced
)

func (s Step) String() string {
	switch s {
	case StepAddress:
		return "address"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	case StepPlaced:
		return "placed"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

func (s Step) MarshalText() ([]byte, error) {
	if s < StepAddress || s > StepPlaced {
		return nil, fmt.Errorf("unknown checkout step %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(text []byte) error {
	for step := StepAddress; step <= StepPlaced; step++ {
		if step.String() == string(text) {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("unknown checkout step %q", text)
}
