package scoring

import (
	"healthprofile/internal/model"
	"healthprofile/internal/schema"
	"healthprofile/internal/store"
)

// Summarizer conventions; both are overridable for synthetic surveys.
const (
	// DefaultDeclaredQuestionID is the self-assessment declaration question
	DefaultDeclaredQuestionID = "q1"
	// DefaultSubstanceSubSectionID is the sub-section where an absent answer
	// is read as "never", not as "skipped"
	DefaultSubstanceSubSectionID = "section_vi_substance_abuse"
)

// DeclaredNoAnswer is the display text when the declaration is unanswered
const DeclaredNoAnswer = "Brak odpowiedzi"

// Tier classifies a sub-section average against the declared baseline.
// The split is strictly two-way: meeting the declaration exactly counts as
// meeting it.
type Tier string

const (
	TierMeetsDeclaration Tier = "meets_declaration"
	TierBelowDeclaration Tier = "below_declaration"
)

// Recommendation is the single needs-attention bucket the detail view
// surfaces for a sub-section.
type Recommendation string

const (
	RecommendStart   Recommendation = "start"
	RecommendImprove Recommendation = "improve"
	RecommendNone    Recommendation = "none"
)

// SubSummary is the derived aggregate of one sub-section. Obtained treats
// unanswered questions as 0 while AnsweredCount excludes them, which is
// why Avg divides by Count, not AnsweredCount.
type SubSummary struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Count         int            `json:"count"`
	Obtained      float64        `json:"obtained"`
	Max           float64        `json:"max"`
	AnsweredCount int            `json:"answeredCount"`
	Avg           float64        `json:"avg"`
	Tier          Tier           `json:"tier"`
	Maintain      []string       `json:"maintain,omitempty"`
	Start         []string       `json:"start,omitempty"`
	Improve       []string       `json:"improve,omitempty"`
	Recommend     Recommendation `json:"recommend"`
}

// Summary is the full scoring output: a pure function of the survey and
// the answer store, recomputed fresh on every request.
type Summary struct {
	Gender        string       `json:"gender"`
	DeclaredScore float64      `json:"declaredScore"`
	DeclaredText  string       `json:"declaredText"`
	Total         float64      `json:"total"`
	SubSections   []SubSummary `json:"subSections"`
}

// Summarizer aggregates raw answers into the comparative scoring summary
type Summarizer struct {
	survey *model.Survey
	index  *schema.Index

	// DeclaredQuestionID anchors the comparison baseline
	DeclaredQuestionID string
	// SubstanceSubSectionID gets the absent-means-never classification rule
	SubstanceSubSectionID string
}

// NewSummarizer creates a summarizer with the conventional designated ids
func NewSummarizer(survey *model.Survey, index *schema.Index) *Summarizer {
	return &Summarizer{
		survey:                survey,
		index:                 index,
		DeclaredQuestionID:    DefaultDeclaredQuestionID,
		SubstanceSubSectionID: DefaultSubstanceSubSectionID,
	}
}

// Summarize computes the whole summary. It never fails: malformed or
// unmatched answers degrade to 0 instead of aborting the computation.
func (s *Summarizer) Summarize(st *store.Store) Summary {
	declaredScore, declaredText := s.declared(st)

	summary := Summary{
		Gender:        st.Gender(),
		DeclaredScore: declaredScore,
		DeclaredText:  declaredText,
		Total:         st.NumericTotal(),
	}
	for i := range s.survey.Sections {
		sec := &s.survey.Sections[i]
		for j := range sec.SubSections {
			summary.SubSections = append(summary.SubSections, s.summarizeSub(&sec.SubSections[j], st, declaredScore))
		}
	}
	return summary
}

func (s *Summarizer) summarizeSub(sub *model.SubSection, st *store.Store, declaredScore float64) SubSummary {
	out := SubSummary{ID: sub.ID, Title: sub.Title}

	var questions []*model.Question
	for i := range sub.Questions {
		q := &sub.Questions[i]
		if st.Visible(q) {
			questions = append(questions, q)
		}
	}
	out.Count = len(questions)
	out.Max = float64(out.Count) * model.ScaleMax

	for _, q := range questions {
		raw, present := st.Get(q.ID)
		val, numeric := 0.0, true
		if present {
			val, numeric = raw.Number()
		}
		if numeric {
			out.Obtained += val
			// an explicit 0 counts as answered; only a missing key does not
			if present {
				out.AnsweredCount++
			}
			if val == model.ScaleMax {
				out.Maintain = append(out.Maintain, q.Text)
			}
		}
	}
	if out.Count > 0 {
		out.Avg = out.Obtained / float64(out.Count)
	}
	out.Tier = TierBelowDeclaration
	if out.Avg >= declaredScore {
		out.Tier = TierMeetsDeclaration
	}

	s.classify(&out, questions, st)
	return out
}

// classify fills the start/improve buckets. The detail view shows the
// improve list only when the start list is empty, so both raw buckets are
// kept and Recommend applies that display policy.
func (s *Summarizer) classify(out *SubSummary, questions []*model.Question, st *store.Store) {
	for _, q := range questions {
		raw, present := st.Get(q.ID)
		if !present {
			if out.ID == s.SubstanceSubSectionID {
				out.Start = append(out.Start, q.Text)
			}
			continue
		}
		val, numeric := raw.Number()
		if !numeric {
			continue
		}
		switch {
		case val == 0:
			out.Start = append(out.Start, q.Text)
		case val == 1 || val == 2:
			out.Improve = append(out.Improve, q.Text)
		}
	}
	switch {
	case len(out.Start) > 0:
		out.Recommend = RecommendStart
	case len(out.Improve) > 0:
		out.Recommend = RecommendImprove
	default:
		out.Recommend = RecommendNone
	}
}

// declared resolves the self-declared baseline: the designated question's
// option score, falling back to numeric coercion of the raw value, clamped
// to the scale.
func (s *Summarizer) declared(st *store.Store) (float64, string) {
	raw, present := st.Get(s.DeclaredQuestionID)

	score := 0.0
	text := DeclaredNoAnswer
	if present {
		text = raw.Text()
	}
	entry, found := s.index.Lookup(s.DeclaredQuestionID)
	if found && present {
		if optText, ok := OptionText(entry.Question, raw); ok {
			text = optText
		}
		if n, ok := OptionScore(entry.Question, raw); ok {
			score = n
		}
	} else if present {
		if n, ok := raw.Number(); ok {
			score = n
		}
	}
	return clamp(score, 0, model.ScaleMax), text
}
