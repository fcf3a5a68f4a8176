package model

import (
	"time"
)

type EventType string
type EventMode string
type EventStatus string

const (
	EventTypeQuiz    EventType = "quiz"
	EventTypeContest EventType = "contest"

	EventModeStrict   EventMode = "strict"
	EventModePractice EventMode = "practice"

	StatusQueue  EventStatus = "queue"
	StatusActive EventStatus = "active"
	StatusEnded  EventStatus = "ended"
)

// Event is the persisted record for either a quiz or a coding contest.
// Exactly one of Quiz or Contest is populated, discriminated by EventType.
// Status transitions queue -> active -> ended are driven externally.
type Event struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	DurationMinutes    int          `json:"durationMinutes"`
	Status             EventStatus  `json:"status"`
	EventType          EventType    `json:"eventType"`
	EventMode          EventMode    `json:"eventMode"`
	TopicsCovered      []string     `json:"topicsCovered"`
	AllowedDepartments []string     `json:"allowedDepartments"`
	Participants       []string     `json:"participants"`
	Submissions        []Submission `json:"submissions"`
	Organizer          string       `json:"organizer"`
	Rules              string       `json:"rules"`
	LeaderboardEnabled bool         `json:"leaderboardEnabled"`
	CreatedBy          string       `json:"createdBy"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`

	Quiz    *QuizDetails    `json:"quiz,omitempty"`
	Contest *ContestDetails `json:"contest,omitempty"`
}

// Submission records a participant's entry; scoring happens outside this
// service.
type Submission struct {
	UserID      string    `json:"userId"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// QuizDetails is the quiz variant payload. TotalScore is derived from
// NumberOfQuestions and PointsPerQuestion, never set independently.
type QuizDetails struct {
	NumberOfQuestions int            `json:"numberOfQuestions"`
	PointsPerQuestion int            `json:"pointsPerQuestion"`
	TotalScore        int            `json:"totalScore"`
	Questions         []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	QuestionID     string   `json:"questionId"`
	QuestionNumber int      `json:"questionNumber"`
	Question       string   `json:"question"`
	Options        []string `json:"options"` // exactly 4
	CorrectAnswer  string   `json:"correctAnswer"`
}

// ContestDetails is the coding-contest variant payload.
type ContestDetails struct {
	NumberOfPrograms int              `json:"numberOfPrograms"`
	PointsPerProgram int              `json:"pointsPerProgram"`
	Problems         []ContestProblem `json:"problems"`
}

type ContestProblem struct {
	ContestProblemCode string            `json:"contestProblemCode"` // A, B, C, ...
	QuestionID         string            `json:"questionId"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Difficulty         string            `json:"difficulty"`
	LanguagesSupported []string          `json:"languagesSupported"`
	ProblemDetails     ProblemDetails    `json:"problemDetails"`
	StarterCode        map[string]string `json:"starterCode"` // keyed by language
	Examples           []Example         `json:"examples"`
	TestCases          []TestCase        `json:"testCases"`
	TimeLimitMs        int               `json:"timeLimitMs"`
	MemoryLimitMb      int               `json:"memoryLimitMb"`
}

type ProblemDetails struct {
	InputFormat  string `json:"inputFormat"`
	OutputFormat string `json:"outputFormat"`
	Constraints  string `json:"constraints"`
	Hint         string `json:"hint"`
}

type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// TestCase is a scoring test case. Hidden cases are never shown to
// participants.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	IsHidden       bool   `json:"isHidden"`
	Description    string `json:"description,omitempty"`
}
