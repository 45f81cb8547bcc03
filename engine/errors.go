package engine

import "fmt"

// Code classifies why an action was rejected.
type Code string

const (
	CodeNotPlayersTurn           Code = "NOT_PLAYERS_TURN"
	CodeInvalidGemSelection      Code = "INVALID_GEM_SELECTION"
	CodeTokenLimitExceeded       Code = "TOKEN_LIMIT_EXCEEDED"
	CodeInsufficientFunds        Code = "INSUFFICIENT_FUNDS"
	CodeReservationLimitExceeded Code = "RESERVATION_LIMIT_EXCEEDED"
	CodeEntityNotFound           Code = "ENTITY_NOT_FOUND"
	CodeGameNotInProgress        Code = "GAME_NOT_IN_PROGRESS"
	CodeActionAlreadyTaken       Code = "ACTION_ALREADY_TAKEN"
	CodeInvalidAction            Code = "INVALID_ACTION"
)

// Rejection is returned for every illegal action. The game state is left
// untouched whenever one is returned.
type Rejection struct {
	Code     Code              // Machine-readable reason
	Message  string            // Human-readable detail
	Metadata map[string]string // Offending ids and counts
}

func (r *Rejection) Error() string {
	if r.Message == "" {
		return string(r.Code)
	}
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

// Is matches any rejection carrying the same code, so callers can write
// errors.Is(err, engine.ErrInsufficientFunds).
func (r *Rejection) Is(target error) bool {
	if t, ok := target.(*Rejection); ok {
		return r.Code == t.Code
	}
	return false
}

var (
	ErrNotPlayersTurn           = &Rejection{Code: CodeNotPlayersTurn}
	ErrInvalidGemSelection      = &Rejection{Code: CodeInvalidGemSelection}
	ErrTokenLimitExceeded       = &Rejection{Code: CodeTokenLimitExceeded}
	ErrInsufficientFunds        = &Rejection{Code: CodeInsufficientFunds}
	ErrReservationLimitExceeded = &Rejection{Code: CodeReservationLimitExceeded}
	ErrEntityNotFound           = &Rejection{Code: CodeEntityNotFound}
	ErrGameNotInProgress        = &Rejection{Code: CodeGameNotInProgress}
	ErrActionAlreadyTaken       = &Rejection{Code: CodeActionAlreadyTaken}
	ErrInvalidAction            = &Rejection{Code: CodeInvalidAction}
)

func reject(code Code, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Message: fmt.Sprintf(format, args...)}
}

func rejectWithMetadata(code Code, metadata map[string]string, format string, args ...any) *Rejection {
	r := reject(code, format, args...)
	r.Metadata = metadata
	return r
}
