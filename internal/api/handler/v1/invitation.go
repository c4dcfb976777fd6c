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

type InvitationService interface {
	CreateBatch(ctx context.Context, userID, slotID uint, capacityType domain.CapacityType, count int) ([]domain.Invitation, error)
	RemainingQuota(ctx context.Context, userID, slotID uint) (int, error)
	ListForAgent(ctx context.Context, userID uint) ([]domain.Invitation, error)
	ListForSlot(ctx context.Context, slotID uint) ([]domain.Invitation, error)
	GetInvitation(ctx context.Context, id uint) (domain.Invitation, error)
	ExpireInvitation(ctx context.Context, id uint) error
}

type InvitationHandler struct {
	svc  InvitationService
	uSvc UserService
}

func NewInvitationHandler(svc InvitationService, uSvc UserService) *InvitationHandler {
	return &InvitationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateInvitations godoc
// @Summary      Create a batch of invitations for the authenticated agent
// @Tags         invitations
// @Produce      json
// @Param        request  body       request.CreateInvitationsRequest true "request body"
// @Success      201      {object}   response.InvitationBatchResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /invitations [post]
func (h *InvitationHandler) HandleCreateInvitations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req request.CreateInvitationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	invitations, err := h.svc.CreateBatch(ctx.Request.Context(), userID, req.SlotID,
		domain.CapacityType(req.CapacityType), req.Count)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAgentNotFound):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrAgentNotFound))
			return
		case errors.Is(err, service.ErrSlotNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSlotNotFound))
			return
		case errors.Is(err, service.ErrSlotInactive):
			response.RenderErr(ctx, response.ErrPreconditionFailed(service.ErrSlotInactive))
			return
		case errors.Is(err, service.ErrQuotaExceeded):
			response.RenderErr(ctx, response.ErrConflict(service.ErrQuotaExceeded))
			return
		case errors.Is(err, service.ErrInvalidBatchCount):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidBatchCount))
			return
		}

		err = fmt.Errorf("v1.HandleCreateInvitations -> h.svc.CreateBatch -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	remaining, err := h.svc.RemainingQuota(ctx.Request.Context(), userID, req.SlotID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateInvitations -> h.svc.RemainingQuota -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.InvitationBatchResponse{
		Invitations: invitations,
		Remaining:   remaining,
	})
}

// HandleGetMyInvitations godoc
// @Summary      List the authenticated agent's invitations
// @Tags         invitations
// @Produce      json
// @Success      200      {array}    domain.Invitation
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /invitations [get]
func (h *InvitationHandler) HandleGetMyInvitations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	invitations, err := h.svc.ListForAgent(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrAgentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetMyInvitations -> h.svc.ListForAgent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invitations)
}

// HandleGetQuota godoc
// @Summary      Remaining invitation quota for the authenticated agent on a slot
// @Tags         invitations
// @Produce      json
// @Param        slotID   path       int true "slot ID"
// @Success      200      {object}   response.QuotaResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /slots/{slotID}/quota [get]
func (h *InvitationHandler) HandleGetQuota(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	slotID, err := parseIDParam(ctx, "slotID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	remaining, err := h.svc.RemainingQuota(ctx.Request.Context(), userID, slotID)
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrAgentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetQuota -> h.svc.RemainingQuota -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.QuotaResponse{
		SlotID:    slotID,
		Remaining: remaining,
	})
}

// HandleGetSlotInvitations godoc
// @Summary      List all invitations on a slot
// @Tags         invitations
// @Produce      json
// @Param        slotID   path       int true "slot ID"
// @Success      200      {array}    domain.Invitation
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /slots/{slotID}/invitations [get]
func (h *InvitationHandler) HandleGetSlotInvitations(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	slotID, err := parseIDParam(ctx, "slotID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	invitations, err := h.svc.ListForSlot(ctx.Request.Context(), slotID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSlotInvitations -> h.svc.ListForSlot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invitations)
}

// HandleGetInvitation godoc
// @Summary      Get an invitation by ID
// @Tags         invitations
// @Produce      json
// @Param        invitationID path   int true "invitation ID"
// @Success      200      {object}   domain.Invitation
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /invitations/{invitationID} [get]
func (h *InvitationHandler) HandleGetInvitation(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	invitationID, err := parseIDParam(ctx, "invitationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	invitation, err := h.svc.GetInvitation(ctx.Request.Context(), invitationID)
	if err != nil {
		if errors.Is(err, service.ErrInvitationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInvitationNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetInvitation -> h.svc.GetInvitation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invitation)
}

// HandleExpireInvitation godoc
// @Summary      Expire a pending or registered invitation
// @Tags         invitations
// @Produce      json
// @Param        invitationID path   int true "invitation ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /invitations/{invitationID}/expire [post]
func (h *InvitationHandler) HandleExpireInvitation(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	invitationID, err := parseIDParam(ctx, "invitationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.ExpireInvitation(ctx.Request.Context(), invitationID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInvitationNotFound))
			return
		case errors.Is(err, service.ErrInvitationAlreadyUsed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrInvitationAlreadyUsed))
			return
		}

		err = fmt.Errorf("v1.HandleExpireInvitation -> h.svc.ExpireInvitation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
