package service

import (
	"fmt"
	"strings"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/session"
)

// fail logs the exit of method and returns err unchanged.
func fail(method string, err error, args ...any) error {
	switch domain.KindOf(err) {
	case domain.KindPersistence:
		logger.ExitMethodWithError(method, err, args...)
	default:
		logger.RejectMethod(method, err, args...)
	}
	return err
}

func validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}

type field struct {
	name  string
	value string
}

// required returns a validation error naming the first blank field.
func required(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return validation("%s is required", f.name)
		}
	}
	return nil
}

func requireAdmin(sc session.Context) error {
	if !sc.IsAdmin() {
		return fmt.Errorf("%w: administrator role required", domain.ErrForbidden)
	}
	return nil
}

func requireOrganization(sc session.Context) error {
	if !sc.IsOrganization() {
		return fmt.Errorf("%w: organization login required", domain.ErrForbidden)
	}
	return nil
}
