package enrollment

import "fmt"

// Requirements are the externally configured completion thresholds
type Requirements struct {
	MinIndependentMandatory int     `json:"minIndependentMandatory"`
	RequiredECTS            float64 `json:"requiredEcts"`
}

// WarningCode identifies an advisory completion warning
type WarningCode string

const (
	WarningInsufficientECTS      WarningCode = "INSUFFICIENT_ECTS"
	WarningInsufficientMandatory WarningCode = "INSUFFICIENT_MANDATORY"
	WarningUnsatisfiedSlotGroup  WarningCode = "UNSATISFIED_SLOT_GROUP"
)

// Warning is shown to the student before the confirmation action
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// Completion holds the advisory flags of a selection. All flags false means
// the selection is complete; the engine never blocks submission itself.
type Completion struct {
	InsufficientMandatory bool      `json:"insufficientMandatory"`
	UnsatisfiedSlotGroup  bool      `json:"unsatisfiedSlotGroup"`
	InsufficientECTS      bool      `json:"insufficientEcts"`
	ChosenIndependent     int       `json:"chosenIndependent"`
	UnsatisfiedSlots      []SlotKey `json:"unsatisfiedSlots"`
	ECTS                  float64   `json:"ects"`

	requirements Requirements
}

// Evaluate computes the completion flags of state against the partition
func Evaluate(p *Partition, state State, req Requirements) (Completion, error) {
	if p == nil {
		return Completion{}, ErrCannotEvaluate
	}

	c := Completion{
		UnsatisfiedSlots: make([]SlotKey, 0),
		ECTS:             state.ECTS,
		requirements:     req,
	}
	for _, course := range p.independent {
		if state.Mandatory.Has(course.ID) {
			c.ChosenIndependent++
		}
	}
	c.InsufficientMandatory = c.ChosenIndependent < req.MinIndependentMandatory

	for _, g := range p.groups {
		if g.chosenCount(state.Mandatory) != 1 {
			c.UnsatisfiedSlots = append(c.UnsatisfiedSlots, g.key)
		}
	}
	c.UnsatisfiedSlotGroup = len(c.UnsatisfiedSlots) > 0

	c.InsufficientECTS = state.ECTS < req.RequiredECTS
	return c, nil
}

// Submittable reports whether no advisory flag is raised
func (c Completion) Submittable() bool {
	return !c.InsufficientMandatory && !c.UnsatisfiedSlotGroup && !c.InsufficientECTS
}

// SlotUnsatisfied reports whether the group at key has zero or several choices
func (c Completion) SlotUnsatisfied(key SlotKey) bool {
	for _, k := range c.UnsatisfiedSlots {
		if k == key {
			return true
		}
	}
	return false
}

// Warnings renders the raised flags as messages
func (c Completion) Warnings() []Warning {
	warnings := make([]Warning, 0, 3)
	if c.InsufficientECTS {
		warnings = append(warnings, Warning{
			Code:    WarningInsufficientECTS,
			Message: fmt.Sprintf("Not enough ECTS chosen: %g of %g required.", c.ECTS, c.requirements.RequiredECTS),
		})
	}
	if c.InsufficientMandatory {
		warnings = append(warnings, Warning{
			Code:    WarningInsufficientMandatory,
			Message: fmt.Sprintf("At least %d mandatory courses must be chosen from the list.", c.requirements.MinIndependentMandatory),
		})
	}
	if c.UnsatisfiedSlotGroup {
		warnings = append(warnings, Warning{
			Code:    WarningUnsatisfiedSlotGroup,
			Message: "Exactly one course must be selected in each mandatory time slot.",
		})
	}
	return warnings
}
