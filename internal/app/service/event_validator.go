package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// CreateEventRequest is the raw submission for either event variant. The
// questions field is polymorphic: a list for quizzes, an object keyed by
// 1-based index for coding contests, so it is decoded per branch.
type CreateEventRequest struct {
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	DurationMinutes    int             `json:"durationMinutes"`
	NumberOfQuestions  int             `json:"numberOfQuestions"`
	PointsPerQuestion  int             `json:"pointsPerQuestion"`
	PointsPerProgram   int             `json:"pointsPerProgram"`
	EventType          string          `json:"eventType"`
	EventMode          string          `json:"eventMode"`
	TopicsCovered      []string        `json:"topicsCovered"`
	AllowedDepartments []string        `json:"allowedDepartments"`
	Language           string          `json:"language"` // contest only: python, java or both
	Questions          json.RawMessage `json:"questions"`
}

type quizQuestionInput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type contestProblemInput struct {
	Problem        string               `json:"problem"`
	Difficulty     string               `json:"difficulty"`
	Example        model.Example        `json:"example"`
	ProblemDetails model.ProblemDetails `json:"problemDetails"`
	StarterCode    map[string]string    `json:"starterCode"`
	TestCases      []model.TestCase     `json:"testCases"`
	TimeLimitMs    int                  `json:"timeLimitMs"`
	MemoryLimitMb  int                  `json:"memoryLimitMb"`
}

// NormalizedEvent is the validator's output: shape fixed, derived fields
// computed, ready for the record builder. It carries no persistence
// metadata yet.
type NormalizedEvent struct {
	Title              string
	Description        string
	DurationMinutes    int
	EventType          model.EventType
	EventMode          model.EventMode
	TopicsCovered      []string
	AllowedDepartments []string
	Quiz               *model.QuizDetails
	Contest            *model.ContestDetails
}

const (
	languagePython = "python"
	languageJava   = "java"
	languageBoth   = "both"

	defaultTimeLimitMs   = 2000
	defaultMemoryLimitMb = 256

	problemTitleMaxLen = 50
)

// ValidateEventPayload checks a raw submission and produces the normalized
// event, or a validation error naming the first failing field. It is pure:
// no I/O, no store access.
func ValidateEventPayload(req CreateEventRequest) (*NormalizedEvent, error) {
	if err := validateMetadata(req); err != nil {
		return nil, err
	}

	normalized := &NormalizedEvent{
		Title:              req.Title,
		Description:        req.Description,
		DurationMinutes:    req.DurationMinutes,
		EventMode:          model.EventMode(req.EventMode),
		TopicsCovered:      req.TopicsCovered,
		AllowedDepartments: req.AllowedDepartments,
	}

	switch model.EventType(req.EventType) {
	case model.EventTypeQuiz:
		normalized.EventType = model.EventTypeQuiz
		quiz, err := validateQuiz(req)
		if err != nil {
			return nil, err
		}
		normalized.Quiz = quiz
	case model.EventTypeContest:
		normalized.EventType = model.EventTypeContest
		contest, err := validateContest(req)
		if err != nil {
			return nil, err
		}
		normalized.Contest = contest
	default:
		return nil, common.Errorf("invalid contest type %q: %w", req.EventType, common.ErrValidation)
	}

	return normalized, nil
}

// validateMetadata runs the shared pre-checks before variant dispatch.
func validateMetadata(req CreateEventRequest) error {
	required := []struct {
		ok    bool
		field string
	}{
		{req.Title != "", "title"},
		{req.Description != "", "description"},
		{req.DurationMinutes > 0, "durationMinutes"},
		{req.EventType != "", "eventType"},
		{req.EventMode != "", "eventMode"},
		{len(req.TopicsCovered) > 0, "topicsCovered"},
		{len(req.AllowedDepartments) > 0, "allowedDepartments"},
	}
	for _, check := range required {
		if !check.ok {
			return common.Errorf("%s is required: %w", check.field, common.ErrValidation)
		}
	}

	if req.NumberOfQuestions <= 0 {
		return common.Errorf("numberOfQuestions must be a positive integer: %w", common.ErrValidation)
	}

	switch model.EventType(req.EventType) {
	case model.EventTypeQuiz:
		if req.PointsPerQuestion <= 0 {
			return common.Errorf("pointsPerQuestion must be a positive integer: %w", common.ErrValidation)
		}
	case model.EventTypeContest:
		if req.PointsPerProgram <= 0 {
			return common.Errorf("pointsPerProgram must be a positive integer: %w", common.ErrValidation)
		}
		if req.Language == "" {
			return common.Errorf("language selection is required for coding contests: %w", common.ErrValidation)
		}
	}
	return nil
}

// validateQuiz checks the quiz branch in order, short-circuiting on the
// first failure. Question indices are 1-based in error messages.
func validateQuiz(req CreateEventRequest) (*model.QuizDetails, error) {
	var questions []quizQuestionInput
	if err := json.Unmarshal(req.Questions, &questions); err != nil {
		return nil, common.Errorf("questions must be a list: %w", common.ErrValidation)
	}

	if len(questions) != req.NumberOfQuestions {
		return nil, common.Errorf("number of questions mismatch: expected %d, got %d: %w",
			req.NumberOfQuestions, len(questions), common.ErrValidation)
	}

	titleSlug := makeTitleSlug(req.Title)
	normalized := make([]model.QuizQuestion, 0, len(questions))
	for i, q := range questions {
		n := i + 1
		if strings.TrimSpace(q.Question) == "" {
			return nil, common.Errorf("question %d: question text is required: %w", n, common.ErrValidation)
		}
		if len(q.Options) != 4 {
			return nil, common.Errorf("question %d: exactly 4 options are required: %w", n, common.ErrValidation)
		}
		if q.CorrectAnswer == "" {
			return nil, common.Errorf("question %d: correct answer is required: %w", n, common.ErrValidation)
		}
		if !contains(q.Options, q.CorrectAnswer) {
			return nil, common.Errorf("question %d: correct answer must be one of the options: %w", n, common.ErrValidation)
		}

		normalized = append(normalized, model.QuizQuestion{
			QuestionID:     makeQuestionID(titleSlug, n),
			QuestionNumber: n,
			Question:       q.Question,
			Options:        q.Options,
			CorrectAnswer:  q.CorrectAnswer,
		})
	}

	return &model.QuizDetails{
		NumberOfQuestions: req.NumberOfQuestions,
		PointsPerQuestion: req.PointsPerQuestion,
		TotalScore:        req.NumberOfQuestions * req.PointsPerQuestion,
		Questions:         normalized,
	}, nil
}

// validateContest checks the coding branch. The payload keys problems by
// 1-based index ("1", "2", ...) rather than as a list; every index from 1
// to numberOfQuestions must be present.
func validateContest(req CreateEventRequest) (*model.ContestDetails, error) {
	var problems map[string]contestProblemInput
	if err := json.Unmarshal(req.Questions, &problems); err != nil {
		return nil, common.Errorf("questions must be an object keyed by problem number: %w", common.ErrValidation)
	}

	if len(problems) != req.NumberOfQuestions {
		return nil, common.Errorf("number of problems mismatch: expected %d, got %d: %w",
			req.NumberOfQuestions, len(problems), common.ErrValidation)
	}

	titleSlug := makeTitleSlug(req.Title)
	normalized := make([]model.ContestProblem, 0, req.NumberOfQuestions)
	for n := 1; n <= req.NumberOfQuestions; n++ {
		p, ok := problems[strconv.Itoa(n)]
		if !ok {
			return nil, common.Errorf("problem %d: missing entry: %w", n, common.ErrValidation)
		}
		if strings.TrimSpace(p.Problem) == "" {
			return nil, common.Errorf("problem %d: problem statement is required: %w", n, common.ErrValidation)
		}
		if p.Example.Input == "" || p.Example.Output == "" {
			return nil, common.Errorf("problem %d: example input and output are required: %w", n, common.ErrValidation)
		}
		if p.ProblemDetails.InputFormat == "" {
			return nil, common.Errorf("problem %d: input format is required: %w", n, common.ErrValidation)
		}
		if p.ProblemDetails.OutputFormat == "" {
			return nil, common.Errorf("problem %d: output format is required: %w", n, common.ErrValidation)
		}
		if _, ok := p.StarterCode[languagePython]; !ok {
			return nil, common.Errorf("problem %d: starter code for python is required: %w", n, common.ErrValidation)
		}
		if _, ok := p.StarterCode[languageJava]; !ok {
			return nil, common.Errorf("problem %d: starter code for java is required: %w", n, common.ErrValidation)
		}
		if len(p.TestCases) == 0 {
			return nil, common.Errorf("problem %d: at least one test case is required: %w", n, common.ErrValidation)
		}
		for j, tc := range p.TestCases {
			if tc.Input == "" || tc.ExpectedOutput == "" {
				return nil, common.Errorf("problem %d, test case %d: input and expected output are required: %w",
					n, j+1, common.ErrValidation)
			}
		}

		testCases := make([]model.TestCase, len(p.TestCases))
		for j, tc := range p.TestCases {
			tc.IsHidden = true // generated cases are scoring-only
			testCases[j] = tc
		}

		timeLimit := p.TimeLimitMs
		if timeLimit == 0 {
			timeLimit = defaultTimeLimitMs
		}
		memoryLimit := p.MemoryLimitMb
		if memoryLimit == 0 {
			memoryLimit = defaultMemoryLimitMb
		}

		normalized = append(normalized, model.ContestProblem{
			ContestProblemCode: problemLetterCode(n),
			QuestionID:         makeQuestionID(titleSlug, n),
			Title:              problemTitle(p.Problem),
			Description:        p.Problem,
			Difficulty:         p.Difficulty,
			LanguagesSupported: expandLanguages(req.Language),
			ProblemDetails:     p.ProblemDetails,
			StarterCode:        p.StarterCode,
			Examples:           []model.Example{p.Example},
			TestCases:          testCases,
			TimeLimitMs:        timeLimit,
			MemoryLimitMb:      memoryLimit,
		})
	}

	return &model.ContestDetails{
		NumberOfPrograms: req.NumberOfQuestions,
		PointsPerProgram: req.PointsPerProgram,
		Problems:         normalized,
	}, nil
}

// makeTitleSlug lowercases and underscores the event title, e.g.
// "Intro Quiz" -> "intro_quiz".
func makeTitleSlug(title string) string {
	return strings.ReplaceAll(slug.Make(title), "-", "_")
}

// makeQuestionID builds a readable, collision-resistant id: the title slug
// and sequence number keep it debuggable, the UUID suffix makes it unique.
func makeQuestionID(titleSlug string, n int) string {
	return titleSlug + "_q" + strconv.Itoa(n) + "_" + uuid.NewString()
}

// problemLetterCode maps 1-based problem numbers to contest letters
// (1 -> A, 2 -> B, ...).
func problemLetterCode(n int) string {
	return string(rune('A' + n - 1))
}

// problemTitle derives a display title from the first line of the problem
// statement, truncated to 50 characters with an ellipsis.
func problemTitle(statement string) string {
	firstLine := strings.TrimSpace(strings.SplitN(statement, "\n", 2)[0])
	runes := []rune(firstLine)
	if len(runes) <= problemTitleMaxLen {
		return firstLine
	}
	return string(runes[:problemTitleMaxLen]) + "..."
}

// expandLanguages turns the submitted language choice into the supported
// list ("both" -> python and java, otherwise a singleton).
func expandLanguages(choice string) []string {
	if choice == languageBoth {
		return []string{languagePython, languageJava}
	}
	return []string{choice}
}

func contains(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
