package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"healthprofile/internal/model"
	"healthprofile/internal/store"
)

func TestAnsweredByControlKind(t *testing.T) {
	survey := testSurvey()

	cases := []struct {
		name    string
		qid     string
		value   model.Value
		section int
		ok      bool
	}{
		{"radio by score string", "q1", model.StringValue("2"), 0, true},
		{"radio unmatched", "q1", model.StringValue("tak"), 0, false},
		{"radio by value", "gender", model.StringValue("female"), 1, true},
		{"radio text ignored when value set", "gender", model.StringValue("Kobieta"), 1, false},
		{"matrix number on scale", "i_q1", model.NumberValue(2), 2, true},
		{"matrix string coerced", "i_q1", model.StringValue("2"), 2, true},
		{"matrix zero counts", "i_q1", model.NumberValue(0), 2, true},
		{"matrix off scale", "i_q1", model.NumberValue(5), 2, false},
		{"matrix non numeric", "i_q1", model.StringValue("often"), 2, false},
		{"binary positive", "vi_q1", model.NumberValue(3), 3, true},
		{"binary zero is unanswered", "vi_q1", model.NumberValue(0), 3, false},
		{"text non blank", "fb_q1", model.StringValue("uwagi"), 4, true},
		{"text whitespace only", "fb_q1", model.StringValue("   "), 4, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := store.New()
			st.Set(tc.qid, tc.value)
			f := New(survey, st)
			sec := &survey.Sections[tc.section]
			q := findQuestion(t, sec, tc.qid)
			assert.Equal(t, tc.ok, f.answered(q, sec))
		})
	}
}

func TestValidateSectionCoversSubSections(t *testing.T) {
	st := store.New()
	st.Set("gender", model.StringValue("female"))
	f := New(testSurvey(), st)

	invalid := f.ValidateSection(2)
	ids := make([]string, 0, len(invalid))
	for _, iv := range invalid {
		ids = append(ids, iv.QuestionID)
	}
	// p_q2 is male-only and must not be demanded of a female respondent
	assert.Equal(t, []string{"i_q1", "i_q2", "p_q1", "p_q3"}, ids)
}

func TestValidateSkipsOtherGender(t *testing.T) {
	st := store.New()
	st.Set("gender", model.StringValue("male"))
	f := New(testSurvey(), st)

	invalid := f.ValidateSubSection(2, 1)
	ids := make([]string, 0, len(invalid))
	for _, iv := range invalid {
		ids = append(ids, iv.QuestionID)
	}
	assert.Equal(t, []string{"p_q2", "p_q3"}, ids)
}

func TestValidationMessageFallback(t *testing.T) {
	f := New(testSurvey(), store.New())

	invalid := f.ValidateSection(0)
	assert.Equal(t, []Invalid{{QuestionID: "q1", Message: "Wybierz jedną z odpowiedzi"}}, invalid)

	invalid = f.ValidateSection(1)
	assert.Equal(t, []Invalid{{QuestionID: "gender", Message: DefaultValidationMessage}}, invalid)
}

func TestOptionWireValuePrecedence(t *testing.T) {
	v := model.StringValue("yes")
	s := 2.0
	assert.Equal(t, "yes", optionWireValue(&model.Option{Text: "Tak", Value: &v, Score: &s}))
	assert.Equal(t, "2", optionWireValue(&model.Option{Text: "Tak", Score: &s}))
	assert.Equal(t, "Tak", optionWireValue(&model.Option{Text: "Tak"}))
}

func TestValidateOutOfRangeIndexes(t *testing.T) {
	f := New(testSurvey(), store.New())
	assert.Nil(t, f.ValidateSection(-1))
	assert.Nil(t, f.ValidateSection(99))
	assert.Nil(t, f.ValidateSubSection(0, 0)) // section 0 has no chunks
	assert.Nil(t, f.ValidateSubSection(2, 7))
}

func findQuestion(t *testing.T, sec *model.Section, id string) *model.Question {
	t.Helper()
	for i := range sec.Questions {
		if sec.Questions[i].ID == id {
			return &sec.Questions[i]
		}
	}
	for si := range sec.SubSections {
		qs := sec.SubSections[si].Questions
		for i := range qs {
			if qs[i].ID == id {
				return &qs[i]
			}
		}
	}
	t.Fatalf("question %s not in section %s", id, sec.ID)
	return nil
}
