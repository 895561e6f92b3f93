package flow

import (
	"strings"

	"healthprofile/internal/model"
)

// DefaultValidationMessage is shown when a question carries no custom one
const DefaultValidationMessage = "To pole jest wymagane"

// Invalid flags one required question that failed validation
type Invalid struct {
	QuestionID string `json:"questionId"`
	Message    string `json:"message"`
}

// ValidateSection checks every required question of a top-level section,
// including all of its sub-sections. Gender-filtered questions are skipped
// with the same predicate scoring and rendering use. The answer store is
// never mutated.
func (f *Flow) ValidateSection(idx int) []Invalid {
	if idx < 0 || idx >= len(f.survey.Sections) {
		return nil
	}
	sec := &f.survey.Sections[idx]
	invalid := f.validateQuestions(sec.Questions, sec)
	for i := range sec.SubSections {
		invalid = append(invalid, f.validateQuestions(sec.SubSections[i].Questions, sec)...)
	}
	return invalid
}

// ValidateSubSection checks one chunk only
func (f *Flow) ValidateSubSection(sectionIdx, subIdx int) []Invalid {
	if sectionIdx < 0 || sectionIdx >= len(f.survey.Sections) {
		return nil
	}
	sec := &f.survey.Sections[sectionIdx]
	if subIdx < 0 || subIdx >= len(sec.SubSections) {
		return nil
	}
	return f.validateQuestions(sec.SubSections[subIdx].Questions, sec)
}

func (f *Flow) validateQuestions(questions []model.Question, sec *model.Section) []Invalid {
	var invalid []Invalid
	for i := range questions {
		q := &questions[i]
		if !f.store.Visible(q) || !q.Required {
			continue
		}
		if !f.answered(q, sec) {
			msg := q.ValidationMessage
			if msg == "" {
				msg = DefaultValidationMessage
			}
			invalid = append(invalid, Invalid{QuestionID: q.ID, Message: msg})
		}
	}
	return invalid
}

// answered mirrors the control the question renders as: choice-style inputs
// count when the stored value selects one of their options, text inputs
// when the trimmed value is non-empty.
func (f *Flow) answered(q *model.Question, sec *model.Section) bool {
	v, ok := f.store.Get(q.ID)
	if !ok {
		return false
	}
	switch sec.Type {
	case model.SectionMatrixFreq:
		n, numeric := v.Number()
		if !numeric {
			return false
		}
		for i := range sec.FrequencyScale {
			if n == sec.FrequencyScale[i].ScoreOrIndex(i) {
				return true
			}
		}
		return false
	case model.SectionMatrixBinary:
		n, numeric := v.Number()
		return numeric && n > 0
	case model.SectionSingleChoice:
		return matchOption(q, v) != nil
	default:
		return strings.TrimSpace(v.Text()) != ""
	}
}

// matchOption finds the option a stored radio value selects. The stored
// value is compared against each option's wire value: explicit value first,
// then score, then text, all by canonical string equality.
func matchOption(q *model.Question, v model.Value) *model.Option {
	raw := v.Text()
	for i := range q.Options {
		opt := &q.Options[i]
		if raw == optionWireValue(opt) {
			return opt
		}
	}
	return nil
}

func optionWireValue(opt *model.Option) string {
	if opt.Value != nil {
		return opt.Value.Text()
	}
	if opt.Score != nil {
		return model.NumberValue(*opt.Score).Text()
	}
	return opt.Text
}
