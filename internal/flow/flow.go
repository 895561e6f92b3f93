package flow

import (
	"encoding/json"

	"healthprofile/internal/model"
	"healthprofile/internal/store"
)

// StateKind discriminates the flow state
type StateKind int

const (
	// StateQuestion renders one section (or one chunk of it)
	StateQuestion StateKind = iota
	// StateSummary is the terminal results view
	StateSummary
)

func (k StateKind) String() string {
	if k == StateSummary {
		return "summary"
	}
	return "question"
}

// MarshalJSON emits the kind as its wire name
func (k StateKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// State is the full navigation position. Sub is meaningful only when the
// addressed section is chunked.
type State struct {
	Kind    StateKind `json:"kind"`
	Section int       `json:"section"`
	Sub     int       `json:"sub"`
}

// Next button labels shown by the presentation layer
const (
	NextLabelAdvance = "Dalej"
	NextLabelResults = "Zobacz wyniki"
)

// Flow drives navigation through the survey: one top-level section at a
// time, chunked sections one sub-section at a time, with required-field
// validation gating every forward transition.
type Flow struct {
	survey *model.Survey
	store  *store.Store
	state  State
	subIdx map[string]int // current chunk per section id, lazily 0
}

// New starts a flow at section 0
func New(survey *model.Survey, st *store.Store) *Flow {
	return &Flow{
		survey: survey,
		store:  st,
		subIdx: make(map[string]int),
	}
}

// State returns the current navigation position
func (f *Flow) State() State {
	return f.state
}

// View is everything the presentation layer needs to render the current
// position.
type View struct {
	State       State             `json:"state"`
	Section     *model.Section    `json:"section,omitempty"`
	SubSection  *model.SubSection `json:"subSection,omitempty"`
	PrevOffered bool              `json:"prevOffered"`
	NextLabel   string            `json:"nextLabel,omitempty"`
}

// View renders the current state
func (f *Flow) View() View {
	if f.state.Kind == StateSummary {
		return View{State: f.state}
	}
	sec := &f.survey.Sections[f.state.Section]
	v := View{
		State:     f.state,
		Section:   sec,
		NextLabel: NextLabelAdvance,
	}
	if f.state.Section >= len(f.survey.Sections)-1 {
		v.NextLabel = NextLabelResults
	}
	if sec.Chunked() {
		v.SubSection = &sec.SubSections[f.state.Sub]
	}
	v.PrevOffered = f.state.Section > 0 || f.state.Sub > 0
	return v
}

// AdvanceResult reports a forward transition attempt. On validation failure
// OK is false, the state is unchanged and Invalid lists the failing
// questions in document order: the first one is the focus target.
type AdvanceResult struct {
	OK      bool      `json:"ok"`
	Invalid []Invalid `json:"invalid,omitempty"`
	View    View      `json:"view"`
}

// Advance validates the current scope and moves forward: next chunk within
// a chunked section, next section otherwise, the summary after the last
// section. A rejected attempt has no side effects and is repeatable.
func (f *Flow) Advance() AdvanceResult {
	if f.state.Kind == StateSummary {
		return AdvanceResult{OK: true, View: f.View()}
	}
	sec := &f.survey.Sections[f.state.Section]
	if sec.Chunked() {
		sub := &sec.SubSections[f.state.Sub]
		if invalid := f.validateQuestions(sub.Questions, sec); len(invalid) > 0 {
			return AdvanceResult{Invalid: invalid, View: f.View()}
		}
		if f.state.Sub < len(sec.SubSections)-1 {
			f.state.Sub++
			f.subIdx[sec.ID] = f.state.Sub
			return AdvanceResult{OK: true, View: f.View()}
		}
		// last chunk validated, fall through to the top-level advance
	} else {
		if invalid := f.ValidateSection(f.state.Section); len(invalid) > 0 {
			return AdvanceResult{Invalid: invalid, View: f.View()}
		}
	}
	if f.state.Section < len(f.survey.Sections)-1 {
		// revisits of a chunked section start at its first chunk again
		if sec.Chunked() {
			f.subIdx[sec.ID] = 0
		}
		f.state.Section++
		f.state.Sub = f.subIdxFor(f.state.Section)
		return AdvanceResult{OK: true, View: f.View()}
	}
	f.state = State{Kind: StateSummary}
	return AdvanceResult{OK: true, View: f.View()}
}

// Retreat moves one step back without validating: previous chunk inside a
// chunked section, otherwise the previous section. A chunked section is
// re-entered at its last chunk. No-op on the first screen and in the summary.
func (f *Flow) Retreat() View {
	if f.state.Kind == StateSummary {
		return f.View()
	}
	sec := &f.survey.Sections[f.state.Section]
	if sec.Chunked() && f.state.Sub > 0 {
		f.state.Sub--
		f.subIdx[sec.ID] = f.state.Sub
		return f.View()
	}
	if f.state.Section > 0 {
		f.state.Section--
		prev := &f.survey.Sections[f.state.Section]
		if prev.Chunked() {
			f.state.Sub = len(prev.SubSections) - 1
			f.subIdx[prev.ID] = f.state.Sub
		} else {
			f.state.Sub = 0
		}
	}
	return f.View()
}

// BackToSurvey leaves the summary and re-enters the last top-level section
// at the chunk it retained.
func (f *Flow) BackToSurvey() View {
	if f.state.Kind != StateSummary {
		return f.View()
	}
	last := len(f.survey.Sections) - 1
	f.state = State{Kind: StateQuestion, Section: last, Sub: f.subIdxFor(last)}
	return f.View()
}

func (f *Flow) subIdxFor(section int) int {
	sec := &f.survey.Sections[section]
	if !sec.Chunked() {
		return 0
	}
	sub := f.subIdx[sec.ID]
	if sub < 0 || sub >= len(sec.SubSections) {
		return 0
	}
	return sub
}
