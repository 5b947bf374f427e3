package terminal

import (
	"errors"
	"fmt"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
)

// describeError turns an engine error into a message for the user.
func describeError(err error) string {
	var (
		incomplete *domain.IncompleteAnswersError
		remote     *domain.RemoteMutationError
		validation *domain.ValidationError
	)

	switch {
	case errors.As(err, &incomplete):
		return fmt.Sprintf("Answer or skip every question before submitting (%d left).", incomplete.Missing)
	case errors.As(err, &remote):
		return fmt.Sprintf("Could not update %s for this card, change reverted.", remote.Flag)
	case errors.Is(err, domain.ErrInsufficientData):
		return "This module needs at least two complete cards to build a test."
	case errors.Is(err, domain.ErrSessionFinished):
		return "This test is already submitted."
	case errors.Is(err, domain.ErrUnauthorized):
		return "Your session has expired. Sign in again."
	case errors.Is(err, domain.ErrNotFound):
		return "Not found."
	case errors.Is(err, domain.ErrStaleSession):
		return "The module was closed before it finished loading."
	case errors.As(err, &validation):
		return "Invalid input: " + validation.Error()
	default:
		return "Something went wrong: " + err.Error()
	}
}
