// Package orgs holds the organization-administration sidebar logic: the
// description editor and the typed-confirmation delete dialog.
package orgs

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotConfirmed rejects a delete while the typed name does not match.
	ErrNotConfirmed = errors.New("organization name not confirmed")
	// ErrDeleteInFlight rejects a second delete while one is outstanding.
	ErrDeleteInFlight = errors.New("organization delete already in progress")
	// ErrWorkflowClosed rejects actions on a dialog that was closed, dismissed or discarded.
	ErrWorkflowClosed = errors.New("delete dialog is no longer open")
	// ErrDialogNotFound reports an unknown or foreign dialog id.
	ErrDialogNotFound = errors.New("delete dialog not found")
)

// Organization is the caller-owned snapshot the sidebar works on.
type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateOrganization is the body sent to the organization-update resource.
type UpdateOrganization struct {
	Description string `json:"description"`
}

// Resource is the remote organization resource.
type Resource interface {
	Update(ctx context.Context, orgID string, body UpdateOrganization) error
	Remove(ctx context.Context, orgID string) error
}

// ErrorHandler owns all user-visible presentation of remote failures.
type ErrorHandler interface {
	HandleError(err error)
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(err error)

func (f ErrorHandlerFunc) HandleError(err error) {
	f(err)
}

// DialogHost is the modal hosting a workflow instance.
type DialogHost interface {
	Close()
	Dismiss(reason string)
}

// Logger is the subset of the logging collaborator used here.
type Logger interface {
	Error(template string, args ...any)
}

// OkayToDelete is the confirmation gate: the typed text must equal the
// organization name under simple lowercase folding.
func OkayToDelete(typed, name string) bool {
	return strings.ToLower(typed) == strings.ToLower(name)
}
