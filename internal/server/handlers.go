package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"essayqa/internal/domain"
)

// answersRequest keeps essay and queries raw so validation can tell a
// wrongly typed field apart from a missing or empty one.
type answersRequest struct {
	Essay    json.RawMessage `json:"essay"`
	Queries  json.RawMessage `json:"queries"`
	Mode     string          `json:"mode"`
	Detailed bool            `json:"detailed"`
}

type answersResponse struct {
	Answers []string `json:"answers"`
}

type detailedAnswersResponse struct {
	Answers []domain.RankedAnswer `json:"answers"`
}

// getAnswers handles POST /answers.
//
// Expected JSON input:
//
//	{
//	  "essay": "Courage\nCourage is the will to act in spite of fear.",
//	  "queries": ["What is courage?"],
//	  "mode": "flat" | "section" | "two-tier",   // optional
//	  "detailed": true                           // optional
//	}
//
// A valid request yields {"answers": [...]}; validation failures yield a
// 400 with {"error": ...}. Degenerate essays (nothing to retrieve from)
// are not failures: they produce an empty answers list.
func (s *Server) getAnswers(c echo.Context) error {
	start := time.Now()

	var req answersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Request body must be valid JSON.")
	}

	essay, err := validateEssay(req.Essay)
	if err != nil {
		return err
	}

	queries, err := validateQueries(req.Queries)
	if err != nil {
		return err
	}

	mode, ok := domain.ParseMode(req.Mode)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Mode must be one of: flat, section, two-tier.")
	}

	answers, err := s.answers.Answer(essay, queries, mode)
	if err != nil {
		s.metrics.ObserveRequest(string(mode), http.StatusBadGateway, time.Since(start))
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	s.metrics.ObserveRequest(string(mode), http.StatusOK, time.Since(start))

	if req.Detailed {
		if answers == nil {
			answers = []domain.RankedAnswer{}
		}
		return c.JSON(http.StatusOK, detailedAnswersResponse{Answers: answers})
	}

	texts := make([]string, len(answers))
	for i, a := range answers {
		texts[i] = a.Answer
	}
	return c.JSON(http.StatusOK, answersResponse{Answers: texts})
}

// validateEssay checks that the essay is a non-empty, non-whitespace string.
// An absent field counts as empty, not as a type error.
func validateEssay(raw json.RawMessage) (string, error) {
	var essay string
	if len(raw) > 0 {
		// json.Unmarshal treats a JSON null as a no-op on a string target,
		// but a null essay is a type error, not an empty one.
		if string(raw) == "null" {
			return "", echo.NewHTTPError(http.StatusBadRequest, "Essay must be a string.")
		}
		if err := json.Unmarshal(raw, &essay); err != nil {
			return "", echo.NewHTTPError(http.StatusBadRequest, "Essay must be a string.")
		}
	}
	if strings.TrimSpace(essay) == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Essay cannot be empty.")
	}
	return essay, nil
}

// validateQueries checks that queries is a non-empty list of strings.
// Emptiness is reported before element types.
func validateQueries(raw json.RawMessage) ([]string, error) {
	var elements []json.RawMessage
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &elements); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Queries must be a list of strings.")
		}
	}
	if len(elements) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Queries list cannot be empty.")
	}

	queries := make([]string, len(elements))
	for i, el := range elements {
		if string(el) == "null" {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Queries must be a list of strings.")
		}
		if err := json.Unmarshal(el, &queries[i]); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Queries must be a list of strings.")
		}
	}
	return queries, nil
}
