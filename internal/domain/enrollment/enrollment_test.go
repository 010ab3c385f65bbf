package enrollment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	require.NoError(t, err)
	return c
}

func timed(t *testing.T, id int64, day time.Weekday, start, end string) Course {
	return Course{
		ID:   id,
		Code: "C" + string(rune('A'+id)),
		Name: "course",
		ECTS: 3,
		Slot: &Slot{Day: day, Start: clock(t, start), End: clock(t, end)},
	}
}

func untimed(id int64) Course {
	return Course{ID: id, Code: "U" + string(rune('A'+id)), Name: "list course", ECTS: 2}
}

func TestNewPartition_Scenario(t *testing.T) {
	catalog := []Course{
		timed(t, 1, time.Tuesday, "10:00", "12:00"),
		timed(t, 2, time.Tuesday, "10:00", "11:30"),
		timed(t, 3, time.Tuesday, "14:00", "16:00"),
	}

	p, err := NewPartition(catalog)
	require.NoError(t, err)

	groups := p.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Len())
	assert.Equal(t, SlotKey{Day: time.Tuesday, Start: clock(t, "10:00")}, groups[0].Key())
	assert.Equal(t, []int64{1, 2}, ids(groups[0].Courses()))
	assert.Equal(t, []int64{3}, ids(p.Independent()))
}

func TestNewPartition_GroupsOnDayAndStartPair(t *testing.T) {
	catalog := []Course{
		timed(t, 1, time.Monday, "10:00", "12:00"),
		timed(t, 2, time.Thursday, "10:00", "12:00"), // same time, other day
		timed(t, 3, time.Monday, "13:00", "15:00"),   // same day, other time
		timed(t, 4, time.Thursday, "10:00", "11:00"),
		untimed(5),
		timed(t, 6, time.Monday, "10:00", "11:00"),
		timed(t, 7, time.Monday, "10:00", "12:00"),
	}

	p, err := NewPartition(catalog)
	require.NoError(t, err)

	groups := p.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, []int64{1, 6, 7}, ids(groups[0].Courses()))
	assert.Equal(t, []int64{2, 4}, ids(groups[1].Courses()))
	assert.Equal(t, []int64{3, 5}, ids(p.Independent()))

	g, ok := p.GroupOf(6)
	require.True(t, ok)
	assert.True(t, g.Contains(1))
	_, ok = p.GroupOf(5)
	assert.False(t, ok)
}

func TestNewPartition_TotalAndDisjoint(t *testing.T) {
	catalog := []Course{
		untimed(1),
		timed(t, 2, time.Friday, "08:00", "10:00"),
		timed(t, 3, time.Friday, "08:00", "09:00"),
		timed(t, 4, time.Wednesday, "08:00", "10:00"),
		untimed(5),
		timed(t, 6, time.Wednesday, "08:00", "10:00"),
		timed(t, 7, time.Wednesday, "09:00", "10:00"),
	}

	p, err := NewPartition(catalog)
	require.NoError(t, err)

	seen := map[int64]int{}
	for _, c := range p.Independent() {
		seen[c.ID]++
	}
	for _, g := range p.Groups() {
		assert.Greater(t, g.Len(), 1)
		for _, c := range g.Courses() {
			seen[c.ID]++
		}
	}
	require.Len(t, seen, len(catalog))
	for id, n := range seen {
		assert.Equal(t, 1, n, "course %d", id)
	}
	assert.Equal(t, len(catalog), p.Size())
}

func TestNewPartition_RejectsBadInput(t *testing.T) {
	_, err := NewPartition(nil)
	assert.ErrorIs(t, err, ErrCatalogMissing)

	empty, err := NewPartition([]Course{})
	require.NoError(t, err)
	assert.Empty(t, empty.Groups())
	assert.Empty(t, empty.Independent())

	tests := []struct {
		name   string
		course Course
	}{
		{name: "no code", course: Course{ID: 1}},
		{name: "negative ects", course: Course{ID: 1, Code: "X", ECTS: -1}},
		{name: "no day", course: Course{ID: 1, Code: "X", Slot: &Slot{Start: 600, End: 660}}},
		{name: "saturday", course: Course{ID: 1, Code: "X", Slot: &Slot{Day: time.Saturday, Start: 600, End: 660}}},
		{name: "end before start", course: Course{ID: 1, Code: "X", Slot: &Slot{Day: time.Monday, Start: 660, End: 600}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPartition([]Course{tt.course})
			assert.ErrorIs(t, err, ErrMalformedCourse)
		})
	}

	_, err = NewPartition([]Course{untimed(1), untimed(1)})
	assert.ErrorIs(t, err, ErrMalformedCourse)
}

func TestNewPartition_ViewsAreCopies(t *testing.T) {
	p, err := NewPartition([]Course{
		timed(t, 1, time.Monday, "10:00", "12:00"),
		timed(t, 2, time.Monday, "10:00", "12:00"),
		untimed(3),
	})
	require.NoError(t, err)

	p.Independent()[0].ID = 99
	p.Groups()[0].Courses()[0].ID = 99
	assert.Equal(t, []int64{3}, ids(p.Independent()))
	assert.Equal(t, []int64{1, 2}, ids(p.Groups()[0].Courses()))
}

func TestIsOfferable(t *testing.T) {
	compatible := NewIDSet(1, 2)
	chosen := NewIDSet(3)

	assert.True(t, IsOfferable(1, compatible, chosen))
	assert.True(t, IsOfferable(3, compatible, chosen), "chosen but incompatible stays checked")
	assert.False(t, IsOfferable(4, compatible, chosen))

	locked := State{Mandatory: chosen, Editable: false}
	assert.False(t, CanEdit(1, locked, compatible, chosen))
	assert.False(t, CanEdit(3, locked, compatible, chosen))

	open := State{Mandatory: chosen, Editable: true}
	assert.True(t, CanEdit(3, open, compatible, chosen))
	assert.False(t, CanEdit(4, open, compatible, chosen))
}

func TestBuildOptions(t *testing.T) {
	p, err := NewPartition([]Course{
		timed(t, 1, time.Monday, "10:00", "12:00"),
		timed(t, 2, time.Monday, "10:00", "12:00"),
		untimed(3),
	})
	require.NoError(t, err)
	electives := []Course{untimed(10), untimed(11)}
	state := State{
		Mandatory: NewIDSet(1),
		Elective:  NewIDSet(11),
		Editable:  true,
	}

	opts := BuildOptions(p, electives, state, NewIDSet(3, 10))

	require.Len(t, opts.Independent, 1)
	assert.Equal(t, Option{Course: untimed(3), Checked: false, Enabled: true}, opts.Independent[0])
	require.Len(t, opts.Groups, 1)
	assert.True(t, opts.Groups[0].Options[0].Checked)
	assert.True(t, opts.Groups[0].Options[0].Enabled)
	assert.False(t, opts.Groups[0].Options[1].Enabled)
	require.Len(t, opts.Electives, 2)
	assert.True(t, opts.Electives[0].Enabled)
	assert.True(t, opts.Electives[1].Checked)
	assert.True(t, opts.Electives[1].Enabled)
}

func TestEvaluate_SlotGroupExactlyOne(t *testing.T) {
	p, err := NewPartition([]Course{
		timed(t, 1, time.Monday, "10:00", "12:00"),
		timed(t, 2, time.Monday, "10:00", "12:00"),
		timed(t, 3, time.Monday, "10:00", "12:00"),
	})
	require.NoError(t, err)
	key := p.Groups()[0].Key()

	tests := []struct {
		name   string
		chosen []int64
		want   bool
	}{
		{name: "none chosen", chosen: nil, want: true},
		{name: "one chosen", chosen: []int64{2}, want: false},
		{name: "two chosen", chosen: []int64{1, 3}, want: true},
		{name: "all chosen", chosen: []int64{1, 2, 3}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Evaluate(p, State{Mandatory: NewIDSet(tt.chosen...)}, Requirements{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.UnsatisfiedSlotGroup)
			assert.Equal(t, tt.want, c.SlotUnsatisfied(key))
		})
	}
}

func TestEvaluate_IndependentMandatoryCount(t *testing.T) {
	p, err := NewPartition([]Course{untimed(1), untimed(2), untimed(3)})
	require.NoError(t, err)
	req := Requirements{MinIndependentMandatory: 2}

	c, err := Evaluate(p, State{Mandatory: NewIDSet(1, 99)}, req)
	require.NoError(t, err)
	assert.True(t, c.InsufficientMandatory)
	assert.Equal(t, 1, c.ChosenIndependent)

	c, err = Evaluate(p, State{Mandatory: NewIDSet(1, 3)}, req)
	require.NoError(t, err)
	assert.False(t, c.InsufficientMandatory)
}

func TestEvaluate_ECTSThresholdInclusive(t *testing.T) {
	p, err := NewPartition([]Course{})
	require.NoError(t, err)
	req := Requirements{RequiredECTS: 48.5}

	c, err := Evaluate(p, State{ECTS: 45}, req)
	require.NoError(t, err)
	assert.True(t, c.InsufficientECTS)
	assert.False(t, c.Submittable())
	require.Len(t, c.Warnings(), 1)
	assert.Equal(t, WarningInsufficientECTS, c.Warnings()[0].Code)

	c, err = Evaluate(p, State{ECTS: 48.5}, req)
	require.NoError(t, err)
	assert.False(t, c.InsufficientECTS)
	assert.True(t, c.Submittable())
	assert.Empty(t, c.Warnings())
}

func TestEvaluate_Idempotent(t *testing.T) {
	p, err := NewPartition([]Course{
		timed(t, 1, time.Monday, "10:00", "12:00"),
		timed(t, 2, time.Monday, "10:00", "12:00"),
		untimed(3),
	})
	require.NoError(t, err)
	state := State{Mandatory: NewIDSet(1, 2), ECTS: 20, Editable: true}
	req := Requirements{MinIndependentMandatory: 2, RequiredECTS: 60}

	first, err := Evaluate(p, state, req)
	require.NoError(t, err)
	second, err := Evaluate(p, state, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first.Warnings(), 3)
	assert.True(t, state.Mandatory.Has(1))
	assert.Equal(t, 2, state.Mandatory.Len())
}

func TestEvaluate_NoPartition(t *testing.T) {
	_, err := Evaluate(nil, State{}, Requirements{})
	assert.ErrorIs(t, err, ErrCannotEvaluate)
}

func TestTotalECTS(t *testing.T) {
	chosen := []Course{{ECTS: 5}, {ECTS: 2.5}}
	core := []Course{{ECTS: 6}}
	assert.InDelta(t, 43.5, TotalECTS(chosen, core, 30), 1e-9)
}

func TestClock(t *testing.T) {
	c := clock(t, "09:05")
	assert.Equal(t, Clock(545), c)
	assert.Equal(t, "09:05", c.String())
	assert.Equal(t, clock(t, "14:30:00"), clock(t, "14:30"))

	_, err := ParseClock("25:00")
	assert.Error(t, err)

	b, err := json.Marshal(Slot{Day: time.Tuesday, Start: c, End: clock(t, "10:00")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":2,"start":"09:05","end":"10:00"}`, string(b))

	var s Slot
	require.NoError(t, json.Unmarshal(b, &s))
	assert.Equal(t, c, s.Start)
}

func ids(courses []Course) []int64 {
	out := make([]int64, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.ID)
	}
	return out
}
