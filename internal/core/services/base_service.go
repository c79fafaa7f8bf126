package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/ctxlog"
)

// validate is shared by all services; validator instances cache struct
// metadata so a single one is cheaper than per-service copies.
var validate = validator.New(validator.WithRequiredStructEnabled())

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.OrganizationAuthorizer
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return ctxlog.FromContext(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// ValidateStruct runs the request through the shared validator and wraps any
// failure as a validation error.
func (s *BaseService) ValidateStruct(ctx context.Context, req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// Authorize checks that the actor holds at least the given role in the
// organization. When no authorizer is wired (tests, local tooling) access is
// granted and a debug line records it.
func (s *BaseService) Authorize(ctx context.Context, actorID, organizationID string, minRole domain.OrganizationRole) error {
	if s.Authorizer != nil {
		return s.Authorizer.AuthorizeAction(ctx, actorID, organizationID, minRole)
	}
	s.LogDebug(ctx, "no organization authorizer wired, access granted",
		slog.String("actor_id", actorID),
		slog.String("organization_id", organizationID),
		slog.String("min_role", string(minRole)))
	return nil
}
