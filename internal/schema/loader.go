package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"healthprofile/internal/model"
)

// Loader fetches the survey document from a file path or an http(s) URL.
// The document is fetched exactly once per process; a failed load is fatal
// for the session (the caller halts instead of retrying with partial
// state).
type Loader struct {
	client *http.Client
}

// NewLoader creates a loader with a bounded fetch timeout
func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Load reads and validates the survey definition
func (l *Loader) Load(ctx context.Context, source string) (*model.Survey, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey schema: %w", err)
	}
	return Parse(data)
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, source)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(source)
}

// Parse decodes and shape-checks a survey document
func Parse(data []byte) (*model.Survey, error) {
	var survey model.Survey
	if err := json.Unmarshal(data, &survey); err != nil {
		return nil, fmt.Errorf("malformed survey schema: %w", err)
	}
	if err := Validate(&survey); err != nil {
		return nil, fmt.Errorf("invalid survey schema: %w", err)
	}
	return &survey, nil
}

// Validate enforces the structural invariants the flow and scoring engines
// rely on: at least one section, questions xor sub_sections per section,
// scales present on matrix sections, question ids unique survey-wide.
func Validate(survey *model.Survey) error {
	if len(survey.Sections) == 0 {
		return fmt.Errorf("survey has no sections")
	}
	seen := make(map[string]string)
	for i := range survey.Sections {
		sec := &survey.Sections[i]
		if sec.ID == "" {
			return fmt.Errorf("section %d has no id", i)
		}
		if len(sec.Questions) > 0 && len(sec.SubSections) > 0 {
			return fmt.Errorf("section %s has both questions and sub_sections", sec.ID)
		}
		if len(sec.Questions) == 0 && len(sec.SubSections) == 0 {
			return fmt.Errorf("section %s has no questions", sec.ID)
		}
		switch sec.Type {
		case model.SectionMatrixFreq:
			if len(sec.FrequencyScale) == 0 {
				return fmt.Errorf("section %s is matrix_frequency but has no frequency_scale", sec.ID)
			}
		case model.SectionMatrixBinary:
			if sec.BinaryScale == nil {
				return fmt.Errorf("section %s is matrix_binary_score but has no binary_scale", sec.ID)
			}
		}
		for j := range sec.Questions {
			if err := checkQuestion(&sec.Questions[j], sec.ID, seen); err != nil {
				return err
			}
		}
		for j := range sec.SubSections {
			sub := &sec.SubSections[j]
			if sub.ID == "" {
				return fmt.Errorf("sub-section %d of section %s has no id", j, sec.ID)
			}
			if len(sub.Questions) == 0 {
				return fmt.Errorf("sub-section %s has no questions", sub.ID)
			}
			for k := range sub.Questions {
				if err := checkQuestion(&sub.Questions[k], sub.ID, seen); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkQuestion(q *model.Question, owner string, seen map[string]string) error {
	if q.ID == "" {
		return fmt.Errorf("question without id in %s", owner)
	}
	if prev, ok := seen[q.ID]; ok {
		return fmt.Errorf("duplicate question id %s (in %s and %s)", q.ID, prev, owner)
	}
	seen[q.ID] = owner
	return nil
}
