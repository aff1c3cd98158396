package segmenter

import (
	"strings"
	"unicode/utf8"

	"essayqa/internal/domain"
)

// DefaultMaxHeadingChars is the longest a single-sentence paragraph can be
// and still count as a heading.
const DefaultMaxHeadingChars = 100

// DefaultTitle is the section title used for body text that appears before
// any heading.
const DefaultTitle = "Introduction"

// Segmenter parses raw essay text into a heading-keyed map of sentences.
// Heading detection is a cheap structural heuristic: a paragraph is a
// heading iff it holds exactly one short sentence. Segmentation never
// fails; malformed or empty input degrades to empty results.
type Segmenter struct {
	maxHeadingChars int
	defaultTitle    string
}

// New creates a segmenter. Non-positive maxHeadingChars and an empty
// defaultTitle fall back to the defaults.
func New(maxHeadingChars int, defaultTitle string) *Segmenter {
	if maxHeadingChars <= 0 {
		maxHeadingChars = DefaultMaxHeadingChars
	}
	if defaultTitle == "" {
		defaultTitle = DefaultTitle
	}
	return &Segmenter{
		maxHeadingChars: maxHeadingChars,
		defaultTitle:    defaultTitle,
	}
}

// SplitParagraphs splits text into paragraphs on line breaks. The document
// is trimmed as a whole before splitting; paragraphs that come out as empty
// strings are dropped, everything else is kept verbatim.
func (s *Segmenter) SplitParagraphs(text string) []string {
	parts := strings.Split(strings.TrimSpace(text), "\n")
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// SplitSentences splits a paragraph into sentences on terminal punctuation
// (period, exclamation mark, question mark). The punctuation is dropped,
// every piece is trimmed, and pieces that end up empty are discarded.
func (s *Segmenter) SplitSentences(paragraph string) []string {
	parts := strings.FieldsFunc(strings.TrimSpace(paragraph), isTerminator)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// IsHeading reports whether a paragraph is a heading: exactly one sentence
// whose length does not exceed the configured maximum. Brevity plus
// singularity is the only signal; a short single-sentence paragraph is
// indistinguishable from a heading.
func (s *Segmenter) IsHeading(paragraph string) bool {
	sentences := s.SplitSentences(paragraph)
	return len(sentences) == 1 && utf8.RuneCountInString(sentences[0]) <= s.maxHeadingChars
}

// Segment walks the paragraphs in order and groups body sentences under the
// last seen heading. Text before the first heading goes under the default
// title. A document with no paragraphs yields an empty mapping.
//
// A heading that repeats an earlier title restarts that section: the
// earlier sentences are dropped and the section keeps its original
// position. This mirrors the reference behavior and is deliberate.
func (s *Segmenter) Segment(text string) *domain.SegmentedEssay {
	essay := domain.NewSegmentedEssay()
	current := s.defaultTitle

	for _, paragraph := range s.SplitParagraphs(text) {
		if s.IsHeading(paragraph) {
			current = s.SplitSentences(paragraph)[0]
			essay.StartSection(current)
			continue
		}
		essay.Append(current, s.SplitSentences(paragraph))
	}

	return essay
}

// BodySentences flattens all section sentence lists in mapping order.
// If the document contains only headings, the section titles are returned
// instead, so retrieval never runs over an empty candidate set as long as
// any heading exists.
func (s *Segmenter) BodySentences(text string) []string {
	essay := s.Segment(text)

	if s.headingsOnly(essay) {
		return essay.Titles()
	}

	var body []string
	for _, sec := range essay.Sections() {
		body = append(body, sec.Sentences...)
	}
	return body
}

// SectionTitles returns the section titles in insertion order.
func (s *Segmenter) SectionTitles(text string) []string {
	return s.Segment(text).Titles()
}

// IsHeadingsOnly reports whether no section holds any sentence. It is
// vacuously true for empty text.
func (s *Segmenter) IsHeadingsOnly(text string) bool {
	return s.headingsOnly(s.Segment(text))
}

func (s *Segmenter) headingsOnly(essay *domain.SegmentedEssay) bool {
	for _, sec := range essay.Sections() {
		if len(sec.Sentences) > 0 {
			return false
		}
	}
	return true
}
