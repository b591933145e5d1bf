package user

import (
	"fmt"
	"strings"
)

// User is a registered picker. Identity is username-only: the row is created
// on the first login with an unknown name. Usernames are trimmed and compared
// case-sensitively.
type User struct {
	ID       string
	Username string
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if u.Username != strings.TrimSpace(u.Username) {
		return fmt.Errorf("username must be trimmed")
	}

	return nil
}
