package store

import (
	"crypto/subtle"
	"strings"

	"prompt-gallery/internal/model"
)

// UIState is the transient, process-lifetime UI state. It is never persisted.
//
// IsAdmin only gates which controls are shown. It is not access control: the backend
// performs no authorization, so anyone who knows the endpoint can call mutation actions.
type UIState struct {
	CurrentCategory string
	SearchQuery     string
	IsAdmin         bool
}

func NewUIState() UIState {
	return UIState{CurrentCategory: model.AllCategories}
}

// SelectCategory switches the category filter. An empty id selects all categories.
func (u *UIState) SelectCategory(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = model.AllCategories
	}
	u.CurrentCategory = id
}

func (u *UIState) SetSearch(q string) {
	u.SearchQuery = q
}

// Login compares password against the configured shared secret and enables admin mode
// on a match. An empty secret disables admin mode entirely.
func (u *UIState) Login(password, secret string) bool {
	if secret == "" || password == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(secret)) != 1 {
		return false
	}
	u.IsAdmin = true
	return true
}

func (u *UIState) Logout() {
	u.IsAdmin = false
}
