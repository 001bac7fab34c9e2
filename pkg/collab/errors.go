package collab

import (
	"errors"
	"fmt"
)

// ErrCollaborator wraps every failure reported by a collaborator.
var ErrCollaborator = errors.New("collab: collaborator failed")

func collaboratorErr(name string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCollaborator, name, err)
}
