package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthprofile/internal/model"
	"healthprofile/internal/store"
)

func score(f float64) *float64 { return &f }

func radioValue(s string) *model.Value {
	v := model.StringValue(s)
	return &v
}

// testSurvey mirrors the shape of the production questionnaire: a flat
// self-assessment, a flat demographics section, a chunked frequency matrix
// with gender-specific questions, a binary matrix and a free-text section.
func testSurvey() *model.Survey {
	return &model.Survey{
		Title: "Ankieta",
		Sections: []model.Section{
			{
				ID:   "self_assessment_q1",
				Type: model.SectionSingleChoice,
				Questions: []model.Question{{
					ID:                "q1",
					Text:              "Jak oceniasz swoją dbałość o zdrowie?",
					Required:          true,
					ValidationMessage: "Wybierz jedną z odpowiedzi",
					Options: []model.Option{
						{Text: "Wcale nie dbam", Score: score(0)},
						{Text: "Dbam w niewielkim stopniu", Score: score(1)},
						{Text: "Dbam umiarkowanie", Score: score(2)},
						{Text: "Bardzo dbam o zdrowie", Score: score(3)},
					},
				}},
			},
			{
				ID:   "demographics",
				Type: model.SectionSingleChoice,
				Questions: []model.Question{{
					ID:       "gender",
					Text:     "Płeć",
					Required: true,
					Options: []model.Option{
						{Text: "Kobieta", Value: radioValue("female")},
						{Text: "Mężczyzna", Value: radioValue("male")},
					},
				}},
			},
			{
				ID:   "section_i",
				Type: model.SectionMatrixFreq,
				FrequencyScale: []model.ScaleOption{
					{Text: "Nigdy", Score: score(0)},
					{Text: "Rzadko", Score: score(1)},
					{Text: "Często", Score: score(2)},
					{Text: "Zawsze", Score: score(3)},
				},
				SubSections: []model.SubSection{
					{
						ID:    "section_i_nutrition",
						Title: "Odżywianie",
						Questions: []model.Question{
							{ID: "i_q1", Text: "Jem warzywa", Required: true},
							{ID: "i_q2", Text: "Ograniczam cukier", Required: true},
						},
					},
					{
						ID:    "section_i_prophylaxis",
						Title: "Profilaktyka",
						Questions: []model.Question{
							{ID: "p_q1", Text: "Samobadanie piersi", Required: true, GenderSpecific: "female"},
							{ID: "p_q2", Text: "Badanie prostaty", Required: true, GenderSpecific: "male"},
							{ID: "p_q3", Text: "Kontrola ciśnienia", Required: true},
						},
					},
				},
			},
			{
				ID:          "section_vi",
				Type:        model.SectionMatrixBinary,
				BinaryScale: &model.BinaryScale{Positive: model.ScaleOption{Text: "TAK", Score: score(3)}},
				SubSections: []model.SubSection{{
					ID:    "section_vi_substance_abuse",
					Title: "Unikanie używek",
					Questions: []model.Question{
						{ID: "vi_q1", Text: "Nie palę", Required: true},
						{ID: "vi_q2", Text: "Unikam alkoholu"},
					},
				}},
			},
			{
				ID: "feedback",
				Questions: []model.Question{
					{ID: "fb_q1", Text: "Twoje uwagi", Required: true},
				},
			},
		},
	}
}

func TestInitialView(t *testing.T) {
	f := New(testSurvey(), store.New())

	v := f.View()
	assert.Equal(t, StateQuestion, v.State.Kind)
	assert.Equal(t, 0, v.State.Section)
	assert.False(t, v.PrevOffered)
	assert.Equal(t, NextLabelAdvance, v.NextLabel)
	require.NotNil(t, v.Section)
	assert.Equal(t, "self_assessment_q1", v.Section.ID)
}

func TestAdvanceRejectedIsIdempotent(t *testing.T) {
	f := New(testSurvey(), store.New())

	res := f.Advance()
	assert.False(t, res.OK)
	require.Len(t, res.Invalid, 1)
	assert.Equal(t, "q1", res.Invalid[0].QuestionID)
	assert.Equal(t, "Wybierz jedną z odpowiedzi", res.Invalid[0].Message)
	assert.Equal(t, 0, f.State().Section)

	// retrying without correcting changes nothing
	again := f.Advance()
	assert.Equal(t, res.Invalid, again.Invalid)
	assert.Equal(t, 0, f.State().Section)
}

func TestFullWalkToSummary(t *testing.T) {
	st := store.New()
	f := New(testSurvey(), st)

	st.Set("q1", model.StringValue("3"))
	require.True(t, f.Advance().OK)

	st.Set("gender", model.StringValue("female"))
	require.True(t, f.Advance().OK)

	v := f.View()
	assert.Equal(t, "section_i", v.Section.ID)
	require.NotNil(t, v.SubSection)
	assert.Equal(t, "section_i_nutrition", v.SubSection.ID)
	assert.True(t, v.PrevOffered)

	// chunk validation covers only the current chunk
	res := f.Advance()
	assert.False(t, res.OK)
	assert.Equal(t, []Invalid{
		{QuestionID: "i_q1", Message: DefaultValidationMessage},
		{QuestionID: "i_q2", Message: DefaultValidationMessage},
	}, res.Invalid)

	st.Set("i_q1", model.NumberValue(3))
	st.Set("i_q2", model.NumberValue(0))
	require.True(t, f.Advance().OK)
	assert.Equal(t, "section_i_prophylaxis", f.View().SubSection.ID)

	// p_q2 is male-only and the declared gender is female: not validated
	st.Set("p_q1", model.NumberValue(2))
	st.Set("p_q3", model.NumberValue(1))
	require.True(t, f.Advance().OK)
	assert.Equal(t, "section_vi", f.View().Section.ID)

	st.Set("vi_q1", model.NumberValue(3))
	require.True(t, f.Advance().OK)

	v = f.View()
	assert.Equal(t, "feedback", v.Section.ID)
	assert.Equal(t, NextLabelResults, v.NextLabel)

	st.Set("fb_q1", model.StringValue("więcej czasu"))
	require.True(t, f.Advance().OK)
	assert.Equal(t, StateSummary, f.State().Kind)
	assert.Nil(t, f.View().Section)
	assert.False(t, f.View().PrevOffered)
}

func TestSummaryIsTerminal(t *testing.T) {
	st := store.New()
	f := New(testSurvey(), st)
	fillAll(st)
	walkToSummary(t, f)

	// neither advance nor retreat leaves the summary
	assert.True(t, f.Advance().OK)
	assert.Equal(t, StateSummary, f.State().Kind)
	f.Retreat()
	assert.Equal(t, StateSummary, f.State().Kind)

	v := f.BackToSurvey()
	assert.Equal(t, StateQuestion, v.State.Kind)
	assert.Equal(t, "feedback", v.Section.ID)
}

func TestRetreatThroughChunks(t *testing.T) {
	st := store.New()
	f := New(testSurvey(), st)
	fillAll(st)

	// move to the binary section
	for f.View().Section.ID != "section_vi" {
		require.True(t, f.Advance().OK)
	}

	// retreating into a chunked section lands on its last chunk
	v := f.Retreat()
	assert.Equal(t, "section_i", v.Section.ID)
	assert.Equal(t, "section_i_prophylaxis", v.SubSection.ID)

	v = f.Retreat()
	assert.Equal(t, "section_i_nutrition", v.SubSection.ID)

	v = f.Retreat()
	assert.Equal(t, "demographics", v.Section.ID)

	// advancing again re-enters the chunked section at the chunk retreat
	// left it on
	require.True(t, f.Advance().OK)
	v = f.View()
	assert.Equal(t, "section_i_nutrition", v.SubSection.ID)
}

func TestRetreatNoOpOnFirstScreen(t *testing.T) {
	f := New(testSurvey(), store.New())
	v := f.Retreat()
	assert.Equal(t, 0, v.State.Section)
	assert.Equal(t, 0, v.State.Sub)
}

// fillAll answers every question so validation never blocks
func fillAll(st *store.Store) {
	st.Set("q1", model.StringValue("3"))
	st.Set("gender", model.StringValue("female"))
	st.Set("i_q1", model.NumberValue(3))
	st.Set("i_q2", model.NumberValue(2))
	st.Set("p_q1", model.NumberValue(2))
	st.Set("p_q3", model.NumberValue(1))
	st.Set("vi_q1", model.NumberValue(3))
	st.Set("vi_q2", model.NumberValue(3))
	st.Set("fb_q1", model.StringValue("ok"))
}

func walkToSummary(t *testing.T, f *Flow) {
	t.Helper()
	for i := 0; i < 20; i++ {
		if f.State().Kind == StateSummary {
			return
		}
		require.True(t, f.Advance().OK)
	}
	t.Fatal("never reached summary")
}
