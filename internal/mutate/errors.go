package mutate

import "fmt"

// ValidationError is a client-side precondition failure. It is raised before any remote
// request is issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
