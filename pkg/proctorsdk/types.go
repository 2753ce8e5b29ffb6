package proctorsdk

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the error shape every endpoint replies with.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_request")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`

	// BlockedReason is only present on 403 login responses for blocked
	// accounts; clients show it verbatim
	BlockedReason string `json:"blockedReason,omitempty"`
}

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest creates a new candidate account.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"displayName,omitempty" validate:"omitempty,max=64"`

	// AdminSecretKey grants the admin flag when it matches the server's
	// configured secret. Silently ignored otherwise.
	AdminSecretKey string `json:"adminSecretKey,omitempty"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	AdminSecretKey string `json:"adminSecretKey,omitempty"`
}

// UserSummary is the public view of an account returned alongside tokens.
type UserSummary struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}

// AuthResponse is returned from both register and login.
type AuthResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
	Token   string      `json:"token"`
}

// ============================================================================
// Quiz Types
// ============================================================================

// AnswerRecord is one per-question entry in a submitted attempt.
// SelectedOption is null when the question was left unanswered.
type AnswerRecord struct {
	QuestionID     string   `json:"questionId"`
	Question       string   `json:"question"`
	SelectedOption *int     `json:"selectedOption,omitempty"`
	CorrectOption  int      `json:"correctOption"`
	IsCorrect      bool     `json:"isCorrect"`
	Options        []string `json:"options"`
}

// SubmitQuizRequest is one finished attempt as reported by the client.
// Score is a pointer so "score: 0" and "score missing" stay distinguishable.
type SubmitQuizRequest struct {
	QuizType         string         `json:"quizType" validate:"required,oneof=plugin theme"`
	Difficulty       string         `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Score            *int           `json:"score" validate:"required,min=0"`
	TotalQuestions   int            `json:"totalQuestions" validate:"required,min=1"`
	CorrectAnswers   int            `json:"correctAnswers" validate:"min=0"`
	WrongAnswers     int            `json:"wrongAnswers" validate:"min=0"`
	TimeTakenSeconds int            `json:"timeTakenSeconds" validate:"min=0"`
	DetailedAnswers  []AnswerRecord `json:"detailedAnswers,omitempty"`
}

// SubmitQuizResponse carries the identifier of the stored result.
type SubmitQuizResponse struct {
	Message  string `json:"message"`
	ResultID string `json:"resultId"`
}

// QuizResult is one stored attempt with its answer breakdown decoded.
type QuizResult struct {
	ID               string         `json:"id"`
	UserID           string         `json:"userId"`
	UserEmail        string         `json:"userEmail"`
	UserName         string         `json:"userName"`
	QuizType         string         `json:"quizType"`
	Difficulty       string         `json:"difficulty"`
	Score            int            `json:"score"`
	TotalQuestions   int            `json:"totalQuestions"`
	CorrectAnswers   int            `json:"correctAnswers"`
	WrongAnswers     int            `json:"wrongAnswers"`
	TimeTakenSeconds int            `json:"timeTakenSeconds"`
	DetailedAnswers  []AnswerRecord `json:"detailedAnswers"`
	Status           string         `json:"status"`
	CompletedAt      string         `json:"completedAt"` // RFC3339
	CreatedAt        string         `json:"createdAt"`   // RFC3339
}

// HistoryResponse is the caller's own attempts, newest first.
type HistoryResponse struct {
	Results []QuizResult `json:"results"`
}

// ============================================================================
// Admin Types
// ============================================================================

// AdminUser is one dashboard row: the account merged with its latest
// attempt. Score is a rounded percentage; QuizType is "both" when the user
// has attempted more than one category; both are null without attempts.
type AdminUser struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Status        string  `json:"status"`
	QuizType      *string `json:"quizType"`
	Score         *int    `json:"score"`
	CompletedAt   *string `json:"completedAt"` // RFC3339
	LatestQuizID  *string `json:"latestQuizId"`
	AttemptCount  int     `json:"attemptCount"`
	IsAdmin       bool    `json:"isAdmin"`
	IsBlocked     bool    `json:"isBlocked"`
	WarningCount  int     `json:"warningCount"`
	RestartCount  int     `json:"restartCount"`
	BlockedReason *string `json:"blockedReason"`
	BlockedAt     *string `json:"blockedAt"` // RFC3339
}

// ListUsersResponse is the admin dashboard user list.
type ListUsersResponse struct {
	Users []AdminUser `json:"users"`
	Total int         `json:"total"`
}

// ListResultsResponse is every stored attempt, newest first.
type ListResultsResponse struct {
	Results []QuizResult `json:"results"`
	Total   int          `json:"total"`
}

// UpdateStatusRequest flips a candidate's triage status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=selected pending"`
}

// StatsResponse is the dashboard aggregate block. All numeric fields are
// zero when no results exist.
type StatsResponse struct {
	TotalAttempts  int `json:"totalAttempts"`
	UniqueUsers    int `json:"uniqueUsers"`
	AverageScore   int `json:"averageScore"` // rounded mean percentage
	AverageTime    int `json:"averageTime"`  // seconds
	TotalCorrect   int `json:"totalCorrect"`
	TotalWrong     int `json:"totalWrong"`
	PluginAttempts int `json:"pluginAttempts"`
	ThemeAttempts  int `json:"themeAttempts"`
}

// MessageResponse acknowledges a state change with no other payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Moderation Types
// ============================================================================

// RecordViolationRequest reports one proctoring violation. The type lands
// in the block reason when this report crosses the threshold.
type RecordViolationRequest struct {
	ViolationType string `json:"violationType" validate:"required,max=64"`
}

// WarningsResponse is the current warning counter and block state.
type WarningsResponse struct {
	WarningCount  int    `json:"warningCount"`
	IsBlocked     bool   `json:"isBlocked"`
	BlockedReason string `json:"blockedReason,omitempty"`
}

// RestartsResponse is the current restart counter and block state.
type RestartsResponse struct {
	RestartCount  int    `json:"restartCount"`
	IsBlocked     bool   `json:"isBlocked"`
	BlockedReason string `json:"blockedReason,omitempty"`
}

// BlockUserRequest manually blocks an account.
type BlockUserRequest struct {
	Reason string `json:"reason" validate:"required,max=256"`
}

// ============================================================================
// Proctoring Channel Types
// ============================================================================

// Message types exchanged over the live proctoring WebSocket.
const (
	ProctorTypeViolation = "violation"
	ProctorTypeReset     = "reset"
	ProctorTypeWarning   = "warning"
	ProctorTypeBlocked   = "blocked"
	ProctorTypeAck       = "ack"
	ProctorTypeError     = "error"
)

// ProctorClientMessage is what the quiz page sends over the channel.
type ProctorClientMessage struct {
	Type          string `json:"type"`
	ViolationType string `json:"violationType,omitempty"`
}

// ProctorServerMessage is the server's reply to a client message.
// Suppressed is true when a violation arrived while the gate was already
// tripped and the counter was left untouched.
type ProctorServerMessage struct {
	Type          string `json:"type"`
	WarningCount  int    `json:"warningCount,omitempty"`
	IsBlocked     bool   `json:"isBlocked,omitempty"`
	BlockedReason string `json:"blockedReason,omitempty"`
	Suppressed    bool   `json:"suppressed,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`
}
