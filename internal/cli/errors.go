package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type adminRequiredError struct {
	configured bool
}

func (e adminRequiredError) Error() string {
	if !e.configured {
		return "admin mode is disabled: no admin secret configured"
	}
	return "admin password required (pass --password or set GALLERY_ADMIN_PASSWORD)"
}
