package schema

import "healthprofile/internal/model"

// Entry locates a question inside the survey tree
type Entry struct {
	Question *model.Question
	Sub      *model.SubSection // nil when the question sits directly on a section
	Section  *model.Section
}

// Index is a flat question-id lookup built once after the schema loads, so
// consumers never walk the section tree searching for a question.
type Index struct {
	byID map[string]Entry
}

// NewIndex builds the lookup for a validated survey
func NewIndex(survey *model.Survey) *Index {
	ix := &Index{byID: make(map[string]Entry)}
	for i := range survey.Sections {
		sec := &survey.Sections[i]
		for j := range sec.Questions {
			q := &sec.Questions[j]
			ix.byID[q.ID] = Entry{Question: q, Section: sec}
		}
		for j := range sec.SubSections {
			sub := &sec.SubSections[j]
			for k := range sub.Questions {
				q := &sub.Questions[k]
				ix.byID[q.ID] = Entry{Question: q, Sub: sub, Section: sec}
			}
		}
	}
	return ix
}

// Lookup finds a question anywhere in the survey by id
func (ix *Index) Lookup(id string) (Entry, bool) {
	e, ok := ix.byID[id]
	return e, ok
}
