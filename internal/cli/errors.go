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

func errInvalidRole(role string) error {
	return fmt.Errorf("invalid role %q (use admin|manager|member|director)", role)
}

func errInvalidPriorityFlag(p string) error {
	return fmt.Errorf("invalid priority %q (use low|medium|high)", p)
}
