package enrollment

// IsOfferable reports whether a course may be checked: it is either already
// chosen or present in the compatibility set.
func IsOfferable(courseID int64, compatible, chosen IDSet) bool {
	return chosen.Has(courseID) || compatible.Has(courseID)
}

// CanEdit reports whether the student may toggle the course right now.
// A locked record disables every toggle.
func CanEdit(courseID int64, state State, compatible, chosen IDSet) bool {
	return state.Editable && IsOfferable(courseID, compatible, chosen)
}

// Option is the selection state of one course as shown to the student
type Option struct {
	Course  Course `json:"course"`
	Checked bool   `json:"checked"`
	Enabled bool   `json:"enabled"`
}

// GroupOptions holds the options of one slot group
type GroupOptions struct {
	Slot    SlotKey  `json:"slot"`
	Options []Option `json:"options"`
}

// Options is the full selection view for a student
type Options struct {
	Independent []Option       `json:"independent"`
	Groups      []GroupOptions `json:"groups"`
	Electives   []Option       `json:"electives"`
}

// BuildOptions derives checked and enabled flags for every course.
// Independent and grouped courses are matched against the mandatory choices,
// electives against the elective choices.
func BuildOptions(p *Partition, electives []Course, state State, compatible IDSet) Options {
	opts := Options{
		Independent: make([]Option, 0),
		Groups:      make([]GroupOptions, 0),
		Electives:   make([]Option, 0, len(electives)),
	}
	if p != nil {
		for _, c := range p.Independent() {
			opts.Independent = append(opts.Independent, option(c, state, compatible, state.Mandatory))
		}
		for _, g := range p.Groups() {
			group := GroupOptions{Slot: g.Key(), Options: make([]Option, 0, g.Len())}
			for _, c := range g.Courses() {
				group.Options = append(group.Options, option(c, state, compatible, state.Mandatory))
			}
			opts.Groups = append(opts.Groups, group)
		}
	}
	for _, c := range electives {
		opts.Electives = append(opts.Electives, option(c, state, compatible, state.Elective))
	}
	return opts
}

func option(c Course, state State, compatible, chosen IDSet) Option {
	return Option{
		Course:  c,
		Checked: chosen.Has(c.ID),
		Enabled: CanEdit(c.ID, state, compatible, chosen),
	}
}
