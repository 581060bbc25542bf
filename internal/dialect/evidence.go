package dialect

import "svfmt/internal/source"

// Hint is one vote for a language, e.g. an `#include` line for C.
type Hint struct {
	Dialect Kind
	Score   int
	Reason  string
	Span    source.Span
}

// Evidence accumulates hints for one buffer. Scores are summed as hints
// arrive; hints with a non-positive score or no language are kept for
// inspection but do not vote.
type Evidence struct {
	hints  []Hint
	scores [kindCount]int
}

func NewEvidence() *Evidence { return &Evidence{} }

func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
	if h.Score > 0 && h.Dialect > Unknown && h.Dialect < kindCount {
		e.scores[h.Dialect] += h.Score
	}
}

func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}

// Classification is the verdict over an Evidence; callers apply their own
// confidence threshold.
type Classification struct {
	Kind          Kind
	Score         int
	Total         int
	Confidence    float64 // Score / Total
	RunnerUp      Kind
	RunnerUpScore int
	Signals       int // hints seen, voting or not
}

// Classify picks the best-scoring language. A tie keeps the language
// declared first in Kind order.
func (e *Evidence) Classify() Classification {
	c := Classification{Signals: len(e.Hints())}
	if e == nil {
		return c
	}
	for k := Unknown + 1; k < kindCount; k++ {
		score := e.scores[k]
		c.Total += score
		switch {
		case score > c.Score:
			c.RunnerUp, c.RunnerUpScore = c.Kind, c.Score
			c.Kind, c.Score = k, score
		case score > c.RunnerUpScore:
			c.RunnerUp, c.RunnerUpScore = k, score
		}
	}
	if c.Total > 0 {
		c.Confidence = float64(c.Score) / float64(c.Total)
	}
	return c
}
