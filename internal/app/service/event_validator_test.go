package service_test

import (
	"encoding/json"
	"strings"
	"testing"

	"contesthub/internal/app/service"
	"contesthub/internal/common"
	"contesthub/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func quizQuestion(text, correct string) map[string]interface{} {
	return map[string]interface{}{
		"question":      text,
		"options":       []string{correct, "B", "C", "D"},
		"correctAnswer": correct,
	}
}

func validQuizRequest(t *testing.T) service.CreateEventRequest {
	t.Helper()
	return service.CreateEventRequest{
		Title:              "Intro Quiz",
		Description:        "Basics of data structures",
		DurationMinutes:    30,
		NumberOfQuestions:  2,
		PointsPerQuestion:  5,
		EventType:          "quiz",
		EventMode:          "strict",
		TopicsCovered:      []string{"arrays"},
		AllowedDepartments: []string{"CSE"},
		Questions: mustJSON(t, []map[string]interface{}{
			quizQuestion("What is a stack?", "LIFO"),
			quizQuestion("What is a queue?", "FIFO"),
		}),
	}
}

func contestProblem(statement string) map[string]interface{} {
	return map[string]interface{}{
		"problem":    statement,
		"difficulty": "Easy",
		"example":    map[string]string{"input": "1 2", "output": "3", "explanation": "sum"},
		"problemDetails": map[string]string{
			"inputFormat":  "two integers",
			"outputFormat": "one integer",
			"constraints":  "1 <= a, b <= 100",
		},
		"starterCode": map[string]string{
			"python": "def solve():\n    pass\n",
			"java":   "class Solution {}\n",
		},
		"testCases": []map[string]interface{}{
			{"input": "1 2", "expectedOutput": "3"},
			{"input": "4 5", "expectedOutput": "9"},
		},
	}
}

func validContestRequest(t *testing.T, problems map[string]interface{}) service.CreateEventRequest {
	t.Helper()
	return service.CreateEventRequest{
		Title:              "Code Sprint",
		Description:        "Weekly coding contest",
		DurationMinutes:    120,
		NumberOfQuestions:  len(problems),
		PointsPerProgram:   20,
		EventType:          "contest",
		EventMode:          "strict",
		TopicsCovered:      []string{"math"},
		AllowedDepartments: []string{"CSE", "ECE"},
		Language:           "both",
		Questions:          mustJSON(t, problems),
	}
}

func TestValidateEventPayloadMetadata(t *testing.T) {
	t.Run("missing title", func(t *testing.T) {
		req := validQuizRequest(t)
		req.Title = ""
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "title is required")
	})

	t.Run("non-positive question count", func(t *testing.T) {
		req := validQuizRequest(t)
		req.NumberOfQuestions = 0
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "numberOfQuestions must be a positive integer")
	})

	t.Run("unknown contest type", func(t *testing.T) {
		req := validQuizRequest(t)
		req.EventType = "hackathon"
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), `invalid contest type "hackathon"`)
	})

	t.Run("contest requires a language selection", func(t *testing.T) {
		req := validContestRequest(t, map[string]interface{}{"1": contestProblem("Add two numbers")})
		req.Language = ""
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "language selection is required")
	})
}

func TestValidateQuizPayload(t *testing.T) {
	t.Run("valid quiz normalizes", func(t *testing.T) {
		normalized, err := service.ValidateEventPayload(validQuizRequest(t))
		require.NoError(t, err)
		require.NotNil(t, normalized.Quiz)
		assert.Nil(t, normalized.Contest)
		assert.Equal(t, model.EventTypeQuiz, normalized.EventType)

		quiz := normalized.Quiz
		assert.Equal(t, 10, quiz.TotalScore) // 2 questions x 5 points
		require.Len(t, quiz.Questions, 2)
		for i, q := range quiz.Questions {
			assert.Equal(t, i+1, q.QuestionNumber)
			assert.Contains(t, q.QuestionID, "intro_quiz")
		}
		assert.NotEqual(t, quiz.Questions[0].QuestionID, quiz.Questions[1].QuestionID)
	})

	t.Run("count mismatch", func(t *testing.T) {
		req := validQuizRequest(t)
		req.NumberOfQuestions = 3
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "expected 3, got 2")
	})

	t.Run("questions must be a list", func(t *testing.T) {
		req := validQuizRequest(t)
		req.Questions = json.RawMessage(`{"1": {}}`)
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "questions must be a list")
	})

	t.Run("empty question text names the index", func(t *testing.T) {
		req := validQuizRequest(t)
		req.Questions = mustJSON(t, []map[string]interface{}{
			quizQuestion("What is a stack?", "LIFO"),
			quizQuestion("   ", "FIFO"),
		})
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "question 2: question text is required")
	})

	t.Run("exactly four options", func(t *testing.T) {
		req := validQuizRequest(t)
		bad := quizQuestion("What is a queue?", "FIFO")
		bad["options"] = []string{"FIFO", "LIFO", "DEQUE"}
		req.Questions = mustJSON(t, []map[string]interface{}{
			quizQuestion("What is a stack?", "LIFO"),
			bad,
		})
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "question 2: exactly 4 options are required")
	})

	t.Run("correct answer must be an option", func(t *testing.T) {
		req := validQuizRequest(t)
		bad := quizQuestion("What is a queue?", "FIFO")
		bad["correctAnswer"] = "STACK"
		req.Questions = mustJSON(t, []map[string]interface{}{
			quizQuestion("What is a stack?", "LIFO"),
			bad,
		})
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "question 2: correct answer must be one of the options")
	})
}

func TestValidateContestPayload(t *testing.T) {
	t.Run("valid contest normalizes", func(t *testing.T) {
		req := validContestRequest(t, map[string]interface{}{
			"1": contestProblem("Add two numbers"),
			"2": contestProblem("Reverse a string"),
			"3": contestProblem("Find the median"),
		})
		normalized, err := service.ValidateEventPayload(req)
		require.NoError(t, err)
		require.NotNil(t, normalized.Contest)
		assert.Nil(t, normalized.Quiz)

		contest := normalized.Contest
		assert.Equal(t, 3, contest.NumberOfPrograms)
		require.Len(t, contest.Problems, 3)

		codes := []string{}
		for _, p := range contest.Problems {
			codes = append(codes, p.ContestProblemCode)
		}
		assert.Equal(t, []string{"A", "B", "C"}, codes)

		first := contest.Problems[0]
		assert.Equal(t, "Add two numbers", first.Title)
		assert.Equal(t, []string{"python", "java"}, first.LanguagesSupported)
		for _, tc := range first.TestCases {
			assert.True(t, tc.IsHidden)
		}
		assert.Equal(t, 2000, first.TimeLimitMs)
		assert.Equal(t, 256, first.MemoryLimitMb)
	})

	t.Run("title derives from first statement line, truncated", func(t *testing.T) {
		long := strings.Repeat("a", 80) + "\nmore detail below"
		req := validContestRequest(t, map[string]interface{}{"1": contestProblem(long)})
		normalized, err := service.ValidateEventPayload(req)
		require.NoError(t, err)

		title := normalized.Contest.Problems[0].Title
		assert.Equal(t, strings.Repeat("a", 50)+"...", title)
	})

	t.Run("single language stays a singleton", func(t *testing.T) {
		req := validContestRequest(t, map[string]interface{}{"1": contestProblem("Add two numbers")})
		req.Language = "python"
		normalized, err := service.ValidateEventPayload(req)
		require.NoError(t, err)
		assert.Equal(t, []string{"python"}, normalized.Contest.Problems[0].LanguagesSupported)
	})

	t.Run("missing java starter code names the problem", func(t *testing.T) {
		second := contestProblem("Reverse a string")
		second["starterCode"] = map[string]string{"python": "pass"}
		req := validContestRequest(t, map[string]interface{}{
			"1": contestProblem("Add two numbers"),
			"2": second,
		})
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "problem 2: starter code for java is required")
	})

	t.Run("missing index is reported", func(t *testing.T) {
		req := validContestRequest(t, map[string]interface{}{
			"1": contestProblem("Add two numbers"),
			"3": contestProblem("Find the median"),
		})
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "problem 2: missing entry")
	})

	t.Run("problem count mismatch", func(t *testing.T) {
		req := validContestRequest(t, map[string]interface{}{"1": contestProblem("Add two numbers")})
		req.NumberOfQuestions = 2
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "expected 2, got 1")
	})

	t.Run("example needs input and output", func(t *testing.T) {
		bad := contestProblem("Add two numbers")
		bad["example"] = map[string]string{"input": "1 2"}
		req := validContestRequest(t, map[string]interface{}{"1": bad})
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "problem 1: example input and output are required")
	})

	t.Run("empty test case list", func(t *testing.T) {
		bad := contestProblem("Add two numbers")
		bad["testCases"] = []map[string]interface{}{}
		req := validContestRequest(t, map[string]interface{}{"1": bad})
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "problem 1: at least one test case is required")
	})

	t.Run("test case without output names its index", func(t *testing.T) {
		bad := contestProblem("Add two numbers")
		bad["testCases"] = []map[string]interface{}{
			{"input": "1 2", "expectedOutput": "3"},
			{"input": "4 5"},
		}
		req := validContestRequest(t, map[string]interface{}{"1": bad})
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "problem 1, test case 2")
	})

	t.Run("missing input format", func(t *testing.T) {
		bad := contestProblem("Add two numbers")
		bad["problemDetails"] = map[string]string{"outputFormat": "one integer"}
		req := validContestRequest(t, map[string]interface{}{"1": bad})
		_, err := service.ValidateEventPayload(req)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, err.Error(), "problem 1: input format is required")
	})
}
