package usecase

import (
	"fmt"

	"essayqa/internal/adapter/encoding"
	"essayqa/internal/adapter/ranker"
	"essayqa/internal/adapter/segmenter"
	"essayqa/internal/domain"
	"essayqa/internal/port"
)

// AnswerUseCase composes the segmenter, the encoder and the ranker into the
// answer-retrieval workflow. Every call builds its own request-scoped state;
// concurrent calls are independent as long as the injected encoder is safe
// for concurrent use.
type AnswerUseCase struct {
	segmenter *segmenter.Segmenter
	encoder   port.Encoder
}

// NewAnswerUseCase creates a new answer use case.
func NewAnswerUseCase(seg *segmenter.Segmenter, encoder port.Encoder) *AnswerUseCase {
	return &AnswerUseCase{
		segmenter: seg,
		encoder:   encoder,
	}
}

// Answer runs the retrieval mode against the essay and returns one ranked
// answer per answerable query, in query order.
func (u *AnswerUseCase) Answer(essay string, queries []string, mode domain.Mode) ([]domain.RankedAnswer, error) {
	switch mode {
	case domain.ModeSection:
		return u.BestSections(essay, queries)
	case domain.ModeTwoTier:
		return u.AnswerBySection(essay, queries)
	default:
		return u.AnswerQuestionsDetailed(essay, queries)
	}
}

// AnswerQuestions returns, for each query, the body sentence most similar
// to it. An essay with no body sentences yields no answers and no error.
func (u *AnswerUseCase) AnswerQuestions(essay string, queries []string) ([]string, error) {
	detailed, err := u.AnswerQuestionsDetailed(essay, queries)
	if err != nil {
		return nil, err
	}
	return answerTexts(detailed), nil
}

// AnswerQuestionsDetailed is flat retrieval: every query is ranked against
// every body sentence of the essay, and the best match is returned with its
// similarity score.
func (u *AnswerUseCase) AnswerQuestionsDetailed(essay string, queries []string) ([]domain.RankedAnswer, error) {
	enc := encoding.NewMemoEncoder(u.encoder)
	return u.rank(enc, queries, u.segmenter.BodySentences(essay))
}

// BestSections is section retrieval: every query is ranked against the
// essay's section titles.
func (u *AnswerUseCase) BestSections(essay string, queries []string) ([]domain.RankedAnswer, error) {
	enc := encoding.NewMemoEncoder(u.encoder)
	return u.rank(enc, queries, u.segmenter.SectionTitles(essay))
}

// AnswerBySection is two-tier retrieval: each query is first matched to its
// best section title, then ranked against only that section's sentences.
// An essay that holds nothing but headings yields no answers.
func (u *AnswerUseCase) AnswerBySection(essay string, queries []string) ([]domain.RankedAnswer, error) {
	if u.segmenter.IsHeadingsOnly(essay) {
		return nil, nil
	}

	// One memo for both tiers, so each query is embedded once even though
	// it is ranked twice.
	enc := encoding.NewMemoEncoder(u.encoder)

	essayMap := u.segmenter.Segment(essay)
	bestSections, err := u.rank(enc, queries, essayMap.Titles())
	if err != nil {
		return nil, err
	}

	answers := make([]domain.RankedAnswer, 0, len(bestSections))
	for _, best := range bestSections {
		section, ok := essayMap.Section(best.Answer)
		if !ok || len(section.Sentences) == 0 {
			// The best section for this query has no body sentences.
			// The headings-only guard makes this unusual but not
			// impossible; treat it as no answer for the query.
			continue
		}

		scoped, err := u.rank(enc, []string{best.Query}, section.Sentences)
		if err != nil {
			return nil, err
		}
		answers = append(answers, scoped...)
	}

	return answers, nil
}

// AnswerTextsBySection is AnswerBySection reduced to the answer strings.
func (u *AnswerUseCase) AnswerTextsBySection(essay string, queries []string) ([]string, error) {
	detailed, err := u.AnswerBySection(essay, queries)
	if err != nil {
		return nil, err
	}
	return answerTexts(detailed), nil
}

// rank is the shared segment-encode-rank skeleton: it embeds the queries
// and the candidate texts and picks each query's most similar candidate.
// An empty candidate set short-circuits to no answers without invoking the
// ranker, so its emptiness guard never trips.
func (u *AnswerUseCase) rank(enc port.Encoder, queries, candidates []string) ([]domain.RankedAnswer, error) {
	if len(candidates) == 0 || len(queries) == 0 {
		return nil, nil
	}

	queryVectors, err := enc.Encode(queries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode queries: %w", err)
	}

	candidateVectors, err := enc.Encode(candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to encode candidates: %w", err)
	}

	answers := make([]domain.RankedAnswer, len(queries))
	for i, query := range queries {
		idx, score, err := ranker.MostSimilar(queryVectors[i], candidateVectors)
		if err != nil {
			return nil, err
		}
		answers[i] = domain.RankedAnswer{
			Query:  query,
			Answer: candidates[idx],
			Score:  score,
		}
	}

	return answers, nil
}

func answerTexts(answers []domain.RankedAnswer) []string {
	texts := make([]string, len(answers))
	for i, a := range answers {
		texts[i] = a.Answer
	}
	return texts
}
