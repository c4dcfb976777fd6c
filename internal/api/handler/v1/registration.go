package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paul-techiesapp/martin-aia/internal/api/handler/v1/request"
	"github.com/paul-techiesapp/martin-aia/internal/api/handler/v1/response"
	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/service"
)

type RegistrationService interface {
	ResolveByToken(ctx context.Context, token string) (domain.Invitation, error)
	Register(ctx context.Context, token string, invitee domain.Invitation) (domain.Invitation, error)
}

// RegistrationHandler serves the public, unauthenticated invitee surface.
// Responses never include the issuing agent.
type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleResolveInvitation godoc
// @Summary      Resolve an invitation token for the registration form
// @Tags         public
// @Produce      json
// @Param        token    path       string true "invitation token"
// @Success      200      {object}   response.PublicInvitationResponse
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /public/invitations/{token} [get]
func (h *RegistrationHandler) HandleResolveInvitation(ctx *gin.Context) {
	token := ctx.Param("token")

	invitation, err := h.svc.ResolveByToken(ctx.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInvitationNotFound))
			return
		case errors.Is(err, service.ErrInvitationAlreadyUsed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrInvitationAlreadyUsed))
			return
		}

		err = fmt.Errorf("v1.HandleResolveInvitation -> h.svc.ResolveByToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPublicInvitation(invitation))
}

// HandleRegisterInvitation godoc
// @Summary      Register an invitee against an invitation token
// @Tags         public
// @Produce      json
// @Param        token    path       string true "invitation token"
// @Param        request  body       request.RegisterInvitationRequest true "request body"
// @Success      200      {object}   response.PublicInvitationResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /public/invitations/{token}/register [post]
func (h *RegistrationHandler) HandleRegisterInvitation(ctx *gin.Context) {
	token := ctx.Param("token")

	var req request.RegisterInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	invitation, err := h.svc.Register(ctx.Request.Context(), token, domain.Invitation{
		InviteeName:       req.Name,
		InviteeNRIC:       req.NRIC,
		InviteePhone:      req.Phone,
		InviteeEmail:      req.Email,
		InviteeOccupation: req.Occupation,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInvitationNotFound))
			return
		case errors.Is(err, service.ErrInvitationAlreadyUsed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrInvitationAlreadyUsed))
			return
		case errors.Is(err, service.ErrDuplicateNRIC):
			response.RenderErr(ctx, response.ErrConflict(service.ErrDuplicateNRIC))
			return
		case errors.Is(err, service.ErrDuplicatePhone):
			response.RenderErr(ctx, response.ErrConflict(service.ErrDuplicatePhone))
			return
		}

		err = fmt.Errorf("v1.HandleRegisterInvitation -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPublicInvitation(invitation))
}
