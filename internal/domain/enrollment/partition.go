package enrollment

import "fmt"

// ConstraintGroup is a set of courses sharing one weekly (day, start) slot.
// Exactly one of them must be chosen.
type ConstraintGroup struct {
	key     SlotKey
	courses []Course
}

// Key returns the shared slot
func (g ConstraintGroup) Key() SlotKey {
	return g.key
}

// Courses returns the group members in catalog order
func (g ConstraintGroup) Courses() []Course {
	out := make([]Course, len(g.courses))
	copy(out, g.courses)
	return out
}

// Len returns the group size
func (g ConstraintGroup) Len() int {
	return len(g.courses)
}

// Contains reports whether the course belongs to the group
func (g ConstraintGroup) Contains(id int64) bool {
	for _, c := range g.courses {
		if c.ID == id {
			return true
		}
	}
	return false
}

// chosenCount counts group members present in chosen
func (g ConstraintGroup) chosenCount(chosen IDSet) int {
	n := 0
	for _, c := range g.courses {
		if chosen.Has(c.ID) {
			n++
		}
	}
	return n
}

// Partition splits an on-list catalog into independent mandatory courses and
// slot groups. It is built once per catalog load and never mutated.
type Partition struct {
	independent []Course
	groups      []ConstraintGroup
	groupOf     map[int64]int
}

// NewPartition groups the catalog by (day, start). Keys shared by more than one
// course become constraint groups, ordered by first appearance; every other
// course stays independent in catalog order.
func NewPartition(catalog []Course) (*Partition, error) {
	if catalog == nil {
		return nil, ErrCatalogMissing
	}

	seen := make(map[int64]struct{}, len(catalog))
	bySlot := make(map[SlotKey][]Course)
	var order []SlotKey
	for _, c := range catalog {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate course id %d", ErrMalformedCourse, c.ID)
		}
		seen[c.ID] = struct{}{}

		if !c.Timed() {
			continue
		}
		key := c.Slot.Key()
		if _, ok := bySlot[key]; !ok {
			order = append(order, key)
		}
		bySlot[key] = append(bySlot[key], c)
	}

	p := &Partition{groupOf: make(map[int64]int)}
	for _, key := range order {
		members := bySlot[key]
		if len(members) < 2 {
			continue
		}
		for _, c := range members {
			p.groupOf[c.ID] = len(p.groups)
		}
		p.groups = append(p.groups, ConstraintGroup{key: key, courses: members})
	}
	for _, c := range catalog {
		if _, grouped := p.groupOf[c.ID]; !grouped {
			p.independent = append(p.independent, c)
		}
	}
	return p, nil
}

// Independent returns the mandatory-by-list courses outside any group
func (p *Partition) Independent() []Course {
	out := make([]Course, len(p.independent))
	copy(out, p.independent)
	return out
}

// Groups returns the constraint groups in first-appearance order
func (p *Partition) Groups() []ConstraintGroup {
	out := make([]ConstraintGroup, len(p.groups))
	copy(out, p.groups)
	return out
}

// GroupOf returns the group a course belongs to
func (p *Partition) GroupOf(id int64) (ConstraintGroup, bool) {
	i, ok := p.groupOf[id]
	if !ok {
		return ConstraintGroup{}, false
	}
	return p.groups[i], true
}

// Size returns the number of partitioned courses
func (p *Partition) Size() int {
	return len(p.independent) + len(p.groupOf)
}
