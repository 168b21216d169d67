package services

import (
	"fmt"

	"chat-app/session-service/internal/domain"
)

// CheckOwnership allows a mutation of the user resource targetID only when
// the caller is that user.
func CheckOwnership(caller domain.Identity, targetID string) error {
	if caller.UserID == "" || caller.UserID != targetID {
		return fmt.Errorf("%w: user %q may not modify user %q", domain.ErrForbidden, caller.UserID, targetID)
	}
	return nil
}
