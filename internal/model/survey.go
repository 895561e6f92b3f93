package model

// SectionType tags how a section's questions are presented and scored
type SectionType string

const (
	SectionSingleChoice SectionType = "single_choice_radio"
	SectionMatrixFreq   SectionType = "matrix_frequency"
	SectionMatrixBinary SectionType = "matrix_binary_score"
)

// ScaleMax is the top score of the questionnaire's scales (0..3)
const ScaleMax float64 = 3

// Survey is the declarative questionnaire definition, fetched once at
// startup and immutable thereafter.
type Survey struct {
	Title    string    `json:"title"`
	Intro    *Intro    `json:"intro,omitempty"`
	Sections []Section `json:"sections"`
}

// Intro carries the note shown before the first section
type Intro struct {
	Note string `json:"note,omitempty"`
}

// Section holds either a flat question list or an ordered list of
// sub-sections (chunks), never both. Matrix sections carry the shared scale
// their questions map onto.
type Section struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Subtitle       string        `json:"subtitle,omitempty"`
	Note           string        `json:"note,omitempty"`
	Type           SectionType   `json:"type,omitempty"`
	Questions      []Question    `json:"questions,omitempty"`
	SubSections    []SubSection  `json:"sub_sections,omitempty"`
	FrequencyScale []ScaleOption `json:"frequency_scale,omitempty"`
	BinaryScale    *BinaryScale  `json:"binary_scale,omitempty"`
}

// Chunked reports whether the section is presented one sub-section at a time
func (s *Section) Chunked() bool {
	return len(s.SubSections) > 0
}

// SubSection is a screen-sized chunk of questions inside a section
type SubSection struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question ids are unique across the whole survey. GenderSpecific restricts
// the question to one declared gender ("male"/"female"); empty means always
// applicable.
type Question struct {
	ID                string   `json:"id"`
	Text              string   `json:"text"`
	Required          bool     `json:"required,omitempty"`
	GenderSpecific    string   `json:"gender_specific,omitempty"`
	ValidationMessage string   `json:"validation_message,omitempty"`
	Options           []Option `json:"options,omitempty"`
}

// Option is one choice of a single-choice question. Value carries
// non-numeric radio values (e.g. gender), Score the numeric weight; either
// may be absent.
type Option struct {
	Text  string   `json:"text"`
	Value *Value   `json:"value,omitempty"`
	Score *float64 `json:"score,omitempty"`
}

// ScaleOption is one step of a frequency scale. Score is a pointer so a
// step without an explicit score falls back to its index.
type ScaleOption struct {
	Text  string   `json:"text"`
	Score *float64 `json:"score,omitempty"`
}

// ScoreOrIndex returns the step's score, falling back to its position on
// the scale.
func (s *ScaleOption) ScoreOrIndex(i int) float64 {
	if s.Score != nil {
		return *s.Score
	}
	return float64(i)
}

// BinaryScale scores a checked binary question via its positive option
type BinaryScale struct {
	Positive ScaleOption `json:"positive"`
}

// PositiveScore is what a checked binary answer earns; 1 when the scale
// omits an explicit score.
func (b *BinaryScale) PositiveScore() float64 {
	if b == nil || b.Positive.Score == nil {
		return 1
	}
	return *b.Positive.Score
}
