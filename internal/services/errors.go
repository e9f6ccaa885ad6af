package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrDuplicateRequest = errors.New("a pending request for this role already exists")
	ErrInvalidRole      = errors.New("role cannot be requested")
	ErrNotPending       = errors.New("role request is not pending")
	ErrInsufficientRole = errors.New("insufficient role")
	ErrSelfAction       = errors.New("cannot perform this action on your own account")
	ErrSessionNotFound  = errors.New("session not found or expired")
	ErrInvalidToken     = errors.New("invalid identity token")
)

// ValidationError carries per-field failures so the UI can show them inline
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// PartialApplyError reports a multi-step mutation that stopped half way and
// could not be rolled back. Applied lists the steps that did happen.
type PartialApplyError struct {
	Operation string
	Applied   []string
	Err       error
}

func (e *PartialApplyError) Error() string {
	return fmt.Sprintf("%s partially applied (%s): %v", e.Operation, strings.Join(e.Applied, ", "), e.Err)
}

func (e *PartialApplyError) Unwrap() error {
	return e.Err
}
