package domain

// Mode selects how answers are retrieved for a query.
type Mode string

const (
	// ModeFlat ranks queries against every body sentence of the essay.
	ModeFlat Mode = "flat"
	// ModeSection ranks queries against the section titles only.
	ModeSection Mode = "section"
	// ModeTwoTier first picks the best section for a query, then the best
	// sentence inside that section.
	ModeTwoTier Mode = "two-tier"
)

// ParseMode maps a string to a Mode. The empty string selects ModeFlat.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeFlat, ModeSection, ModeTwoTier:
		return Mode(s), true
	case "":
		return ModeFlat, true
	}
	return ModeFlat, false
}

// Section is a titled group of sentences, in original document order.
type Section struct {
	Title     string
	Sentences []string
}

// SegmentedEssay is an ordered title-to-sentences mapping produced by the
// segmenter. Titles keep their insertion order.
type SegmentedEssay struct {
	sections []Section
	index    map[string]int
}

// NewSegmentedEssay returns an empty segmented essay.
func NewSegmentedEssay() *SegmentedEssay {
	return &SegmentedEssay{index: make(map[string]int)}
}

// StartSection begins (or restarts) a section under the given title with no
// sentences. A repeated title keeps its original position but drops the
// sentences accumulated so far, matching the reference segmentation.
func (se *SegmentedEssay) StartSection(title string) {
	if i, ok := se.index[title]; ok {
		se.sections[i].Sentences = nil
		return
	}
	se.index[title] = len(se.sections)
	se.sections = append(se.sections, Section{Title: title})
}

// Append adds sentences to the named section, creating it if needed.
func (se *SegmentedEssay) Append(title string, sentences []string) {
	i, ok := se.index[title]
	if !ok {
		se.StartSection(title)
		i = se.index[title]
	}
	se.sections[i].Sentences = append(se.sections[i].Sentences, sentences...)
}

// Sections returns the sections in insertion order.
func (se *SegmentedEssay) Sections() []Section {
	return se.sections
}

// Section returns the section with the given title.
func (se *SegmentedEssay) Section(title string) (Section, bool) {
	i, ok := se.index[title]
	if !ok {
		return Section{}, false
	}
	return se.sections[i], true
}

// Titles returns the section titles in insertion order.
func (se *SegmentedEssay) Titles() []string {
	titles := make([]string, len(se.sections))
	for i, s := range se.sections {
		titles[i] = s.Title
	}
	return titles
}

// Len returns the number of sections.
func (se *SegmentedEssay) Len() int {
	return len(se.sections)
}

// Candidate pairs a piece of text with its embedding vector. Candidates are
// built fresh per request and never shared.
type Candidate struct {
	Text   string
	Vector []float32
}

// RankedAnswer is the outcome of matching one query against a candidate set.
type RankedAnswer struct {
	Query  string  `json:"query"`
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}
