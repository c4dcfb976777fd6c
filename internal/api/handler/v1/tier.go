package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paul-techiesapp/martin-aia/internal/api/handler/v1/request"
	"github.com/paul-techiesapp/martin-aia/internal/api/handler/v1/response"
	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/service"
)

type TierHandler struct {
	svc  CampaignService
	uSvc UserService
}

func NewTierHandler(svc CampaignService, uSvc UserService) *TierHandler {
	return &TierHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateTier godoc
// @Summary      Create an agent tier
// @Tags         tiers
// @Produce      json
// @Param        request  body       request.CreateTierRequest true "request body"
// @Success      201      {object}   domain.Tier
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /tiers [post]
func (h *TierHandler) HandleCreateTier(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	var req request.CreateTierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tier, err := h.svc.CreateTier(ctx.Request.Context(), domain.Tier{
		Name:                   req.Name,
		RoleType:               domain.RoleType(req.RoleType),
		RewardAmount:           req.RewardAmount,
		InvitationLimitPerSlot: req.InvitationLimitPerSlot,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateTier -> h.svc.CreateTier -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, tier)
}

// HandleGetTiers godoc
// @Summary      List all tiers
// @Tags         tiers
// @Produce      json
// @Success      200      {array}    domain.Tier
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /tiers [get]
func (h *TierHandler) HandleGetTiers(ctx *gin.Context) {
	tiers, err := h.svc.ListTiers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTiers -> h.svc.ListTiers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tiers)
}

// HandleUpdateTier godoc
// @Summary      Update a tier
// @Tags         tiers
// @Produce      json
// @Param        tierID   path       int true "tier ID"
// @Param        request  body       request.UpdateTierRequest true "request body"
// @Success      200      {object}   domain.Tier
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /tiers/{tierID} [put]
func (h *TierHandler) HandleUpdateTier(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	tierID, err := parseIDParam(ctx, "tierID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateTierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tier, err := h.svc.UpdateTier(ctx.Request.Context(), domain.Tier{
		ID:                     tierID,
		Name:                   req.Name,
		RoleType:               domain.RoleType(req.RoleType),
		RewardAmount:           req.RewardAmount,
		InvitationLimitPerSlot: req.InvitationLimitPerSlot,
	})
	if err != nil {
		if errors.Is(err, service.ErrTierNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTierNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateTier -> h.svc.UpdateTier -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tier)
}

// HandleDeleteTier godoc
// @Summary      Delete a tier with no assigned agents
// @Tags         tiers
// @Produce      json
// @Param        tierID   path       int true "tier ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /tiers/{tierID} [delete]
func (h *TierHandler) HandleDeleteTier(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	tierID, err := parseIDParam(ctx, "tierID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteTier(ctx.Request.Context(), tierID); err != nil {
		switch {
		case errors.Is(err, service.ErrTierNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTierNotFound))
			return
		case errors.Is(err, service.ErrTierInUse):
			response.RenderErr(ctx, response.ErrConflict(service.ErrTierInUse))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteTier -> h.svc.DeleteTier -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
