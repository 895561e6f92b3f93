package scoring

import "healthprofile/internal/model"

// MatchOption returns the first option a stored raw value selects. Each
// option is tried in order, its explicit value first, then its score, then
// its text, all compared by canonical string form. A numeric score stored
// as the string "3" still matches.
func MatchOption(q *model.Question, v model.Value) *model.Option {
	raw := v.Text()
	for i := range q.Options {
		opt := &q.Options[i]
		if opt.Value != nil && opt.Value.Text() == raw {
			return opt
		}
		if opt.Score != nil && model.NumberValue(*opt.Score).Text() == raw {
			return opt
		}
		if opt.Text == raw {
			return opt
		}
	}
	return nil
}

// OptionText resolves the display text of a choice answer
func OptionText(q *model.Question, v model.Value) (string, bool) {
	if opt := MatchOption(q, v); opt != nil {
		return opt.Text, true
	}
	return "", false
}

// OptionScore resolves a choice answer to its numeric score. A match
// without an explicit score, or no match at all, falls back to coercing
// the raw value; the second return is false only when not even that
// yields a number. Never errors: scoring is leniency-first.
func OptionScore(q *model.Question, v model.Value) (float64, bool) {
	if opt := MatchOption(q, v); opt != nil && opt.Score != nil {
		return *opt.Score, true
	}
	return v.Number()
}

func clamp(n, lo, hi float64) float64 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
