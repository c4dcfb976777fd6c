package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/paul-techiesapp/martin-aia/internal/api/handler/v1/response"
	"github.com/paul-techiesapp/martin-aia/internal/api/middleware"
	"github.com/paul-techiesapp/martin-aia/internal/domain"
)

var (
	errMissingIdentity = errors.New("missing authenticated user")
	errAdminOnly       = errors.New("admin role required")
)

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %v %q", name, raw)
	}

	return uint(id), nil
}

// currentUserID returns the authenticated user's ID, rendering a 401 when
// absent. A false return means the response has been written.
func currentUserID(ctx *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errMissingIdentity))

		return 0, false
	}

	return userID, true
}

type roleChecker interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// requireAdmin renders a 403 unless the authenticated user is an admin.
// A false return means the response has been written.
func requireAdmin(ctx *gin.Context, svc roleChecker) bool {
	userID, ok := currentUserID(ctx)
	if !ok {
		return false
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.requireAdmin -> svc.GetUser -> %w", err)))

		return false
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(errAdminOnly))

		return false
	}

	return true
}
