package domain

import "time"

// Quiz categories a result can belong to. "both" is never stored; the
// admin summary derives it when a user has attempted plugin and theme.
const (
	QuizTypePlugin = "plugin"
	QuizTypeTheme  = "theme"
	QuizTypeBoth   = "both"
)

// Difficulty levels.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Triage status values. Results start pending; admins flip candidates to
// selected.
const (
	StatusPending  = "pending"
	StatusSelected = "selected"
)

// ValidQuizType reports whether t is one of the stored categories.
func ValidQuizType(t string) bool {
	return t == QuizTypePlugin || t == QuizTypeTheme
}

func ValidDifficulty(d string) bool {
	return d == DifficultyBeginner || d == DifficultyIntermediate || d == DifficultyAdvanced
}

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusSelected
}

// AnswerRecord is one per-question entry in a submitted attempt.
// SelectedOption is nil when the question was left unanswered.
type AnswerRecord struct {
	QuestionID     string   `json:"questionId"`
	Question       string   `json:"question"`
	SelectedOption *int     `json:"selectedOption,omitempty"`
	CorrectOption  int      `json:"correctOption"`
	IsCorrect      bool     `json:"isCorrect"`
	Options        []string `json:"options"`
}

// QuizResult is one completed attempt. UserEmail and UserName are snapshots
// taken at submission time; a later display-name change does not rewrite
// historical rows.
type QuizResult struct {
	ID               string
	UserID           string
	UserEmail        string
	UserName         string
	QuizType         string
	Difficulty       string
	Score            int
	TotalQuestions   int
	CorrectAnswers   int
	WrongAnswers     int
	TimeTakenSeconds int
	Answers          []AnswerRecord
	Status           string
	CompletedAt      time.Time
	CreatedAt        time.Time
}

// ScorePercent returns the attempt score as a rounded percentage.
func (r QuizResult) ScorePercent() int {
	if r.TotalQuestions == 0 {
		return 0
	}
	return int(float64(r.Score)/float64(r.TotalQuestions)*100 + 0.5)
}
