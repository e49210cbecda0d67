package constants

// Centralized constants for env keys, routes and OpenAI integration.
const (
	// Environment variable keys
	EnvOpenAIAPIKey = "OPENAI_API_KEY"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// OpenAI API endpoints and base URL
	OpenAIBaseURL             = "https://api.openai.com"
	OpenAIChatCompletionsPath = "/v1/chat/completions"

	// OpenAI model name
	OpenAIChatModel = "gpt-5-nano"
)

// Routes used by the backend router
const (
	RouteAPIPrefix       = "/api"
	RouteActions         = "/actions"
	RouteContests        = "/contests"
	RouteContestByID     = "/contests/:contestID"
	RouteContestStart    = "/contests/:contestID/rounds/start"
	RouteContestBid      = "/contests/:contestID/bid"
	RouteContestAction   = "/contests/:contestID/actions"
	RouteContestConfirm  = "/contests/:contestID/confirm"
	RouteContestReport   = "/contests/:contestID/report"
	RouteContestWS       = "/contests/:contestID/ws"
	RouteVersion         = "/version"
	RouteMetrics         = "/metrics"
	RouteHealthz         = "/healthz"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrInvalidContestID = "Invalid contest ID"
	ErrContestNotFound  = "Contest not found"

	ErrFailedCreateContest  = "Failed to create contest"
	ErrFailedUpdateContest  = "Failed to update contest"
	ErrFailedFetchContest   = "Failed to fetch contest"
	ErrContestNameExceeds   = "Contest name exceeds 64 characters"
	ErrContestNotInProgress = "Contest is not in progress"

	ErrWrongPhase            = "Submission not valid in the current phase"
	ErrAlreadySubmitted      = "Already submitted this round"
	ErrInvalidAmount         = "Bid must be between 0 and your balance"
	ErrUnknownActionType     = "Unknown action type"
	ErrInsufficientFunds     = "Insufficient funds for this action"
	ErrContestantNotInContest = "Contestant not in this contest"
	ErrOpponentManaged       = "Opponent submissions are machine-controlled"
	ErrBidRequiredFirst      = "Submit a bid before confirming the round"
)

// Logging field names
const (
	LogFieldContestID = "contest_id"
	LogFieldRound     = "round"
	LogFieldAddr      = "addr"
	LogFieldWinner    = "winner"
	LogFieldSource    = "source"
	LogFieldWorkerID  = "worker_id"
)
