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

type CampaignService interface {
	CreateCampaign(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	GetCampaign(ctx context.Context, id uint) (domain.Campaign, error)
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	UpdateCampaign(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	TransitionCampaign(ctx context.Context, id uint, target domain.CampaignStatus) (domain.Campaign, error)
	CreateSlot(ctx context.Context, slot domain.Slot) (domain.Slot, error)
	GetSlot(ctx context.Context, id uint) (domain.Slot, error)
	ListSlots(ctx context.Context, campaignID uint) ([]domain.Slot, error)
	UpdateSlot(ctx context.Context, slot domain.Slot) (domain.Slot, error)
	CreateTier(ctx context.Context, tier domain.Tier) (domain.Tier, error)
	GetTier(ctx context.Context, id uint) (domain.Tier, error)
	ListTiers(ctx context.Context) ([]domain.Tier, error)
	UpdateTier(ctx context.Context, tier domain.Tier) (domain.Tier, error)
	DeleteTier(ctx context.Context, id uint) error
	CampaignReport(ctx context.Context, campaignID uint) ([]domain.SlotReport, error)
}

type CampaignHandler struct {
	svc  CampaignService
	uSvc UserService
}

func NewCampaignHandler(svc CampaignService, uSvc UserService) *CampaignHandler {
	return &CampaignHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateCampaign godoc
// @Summary      Create a campaign in draft status
// @Tags         campaigns
// @Produce      json
// @Param        request  body       request.CreateCampaignRequest true "request body"
// @Success      201      {object}   domain.Campaign
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /campaigns [post]
func (h *CampaignHandler) HandleCreateCampaign(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	var req request.CreateCampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign, err := h.svc.CreateCampaign(ctx.Request.Context(), domain.Campaign{
		Name:           req.Name,
		Venue:          req.Venue,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		InvitationType: domain.InvitationType(req.InvitationType),
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateCampaign -> h.svc.CreateCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, campaign)
}

// HandleGetCampaigns godoc
// @Summary      List all campaigns
// @Tags         campaigns
// @Produce      json
// @Success      200      {array}    domain.Campaign
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /campaigns [get]
func (h *CampaignHandler) HandleGetCampaigns(ctx *gin.Context) {
	campaigns, err := h.svc.ListCampaigns(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCampaigns -> h.svc.ListCampaigns -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaigns)
}

// HandleGetCampaign godoc
// @Summary      Get a campaign by ID
// @Tags         campaigns
// @Produce      json
// @Param        campaignID path     int true "campaign ID"
// @Success      200      {object}   domain.Campaign
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /campaigns/{campaignID} [get]
func (h *CampaignHandler) HandleGetCampaign(ctx *gin.Context) {
	campaignID, err := parseIDParam(ctx, "campaignID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign, err := h.svc.GetCampaign(ctx.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCampaignNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetCampaign -> h.svc.GetCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaign)
}

// HandleUpdateCampaign godoc
// @Summary      Update a campaign's details
// @Tags         campaigns
// @Produce      json
// @Param        campaignID path     int true "campaign ID"
// @Param        request  body       request.UpdateCampaignRequest true "request body"
// @Success      200      {object}   domain.Campaign
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /campaigns/{campaignID} [put]
func (h *CampaignHandler) HandleUpdateCampaign(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	campaignID, err := parseIDParam(ctx, "campaignID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateCampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign, err := h.svc.UpdateCampaign(ctx.Request.Context(), domain.Campaign{
		ID:             campaignID,
		Name:           req.Name,
		Venue:          req.Venue,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		InvitationType: domain.InvitationType(req.InvitationType),
	})
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCampaignNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateCampaign -> h.svc.UpdateCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaign)
}

// HandleTransitionCampaign godoc
// @Summary      Move a campaign along its status lifecycle
// @Tags         campaigns
// @Produce      json
// @Param        campaignID path     int true "campaign ID"
// @Param        request  body       request.TransitionCampaignRequest true "request body"
// @Success      200      {object}   domain.Campaign
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /campaigns/{campaignID}/status [post]
func (h *CampaignHandler) HandleTransitionCampaign(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	campaignID, err := parseIDParam(ctx, "campaignID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.TransitionCampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign, err := h.svc.TransitionCampaign(ctx.Request.Context(), campaignID, domain.CampaignStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCampaignNotFound))
			return
		case errors.Is(err, service.ErrInvalidCampaignTransition):
			response.RenderErr(ctx, response.ErrConflict(service.ErrInvalidCampaignTransition))
			return
		}

		err = fmt.Errorf("v1.HandleTransitionCampaign -> h.svc.TransitionCampaign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, campaign)
}

// HandleCreateSlot godoc
// @Summary      Create a weekly slot within a campaign
// @Tags         slots
// @Produce      json
// @Param        campaignID path     int true "campaign ID"
// @Param        request  body       request.CreateSlotRequest true "request body"
// @Success      201      {object}   domain.Slot
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /campaigns/{campaignID}/slots [post]
func (h *CampaignHandler) HandleCreateSlot(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	campaignID, err := parseIDParam(ctx, "campaignID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CreateSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	slot, err := h.svc.CreateSlot(ctx.Request.Context(), domain.Slot{
		CampaignID:            campaignID,
		DayOfWeek:             *req.DayOfWeek,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		CheckinWindowMinutes:  req.CheckinWindowMinutes,
		CheckoutWindowMinutes: req.CheckoutWindowMinutes,
		IsActive:              true,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCampaignNotFound))
			return
		case errors.Is(err, service.ErrInvalidSlotWindow):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidSlotWindow))
			return
		}

		err = fmt.Errorf("v1.HandleCreateSlot -> h.svc.CreateSlot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, slot)
}

// HandleGetSlots godoc
// @Summary      List a campaign's slots
// @Tags         slots
// @Produce      json
// @Param        campaignID path     int true "campaign ID"
// @Success      200      {array}    domain.Slot
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /campaigns/{campaignID}/slots [get]
func (h *CampaignHandler) HandleGetSlots(ctx *gin.Context) {
	campaignID, err := parseIDParam(ctx, "campaignID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	slots, err := h.svc.ListSlots(ctx.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCampaignNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetSlots -> h.svc.ListSlots -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, slots)
}

// HandleUpdateSlot godoc
// @Summary      Update a slot
// @Tags         slots
// @Produce      json
// @Param        slotID   path       int true "slot ID"
// @Param        request  body       request.UpdateSlotRequest true "request body"
// @Success      200      {object}   domain.Slot
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /slots/{slotID} [put]
func (h *CampaignHandler) HandleUpdateSlot(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	slotID, err := parseIDParam(ctx, "slotID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	slot, err := h.svc.UpdateSlot(ctx.Request.Context(), domain.Slot{
		ID:                    slotID,
		DayOfWeek:             *req.DayOfWeek,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		CheckinWindowMinutes:  req.CheckinWindowMinutes,
		CheckoutWindowMinutes: req.CheckoutWindowMinutes,
		IsActive:              *req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSlotNotFound))
			return
		case errors.Is(err, service.ErrInvalidSlotWindow):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidSlotWindow))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateSlot -> h.svc.UpdateSlot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, slot)
}

// HandleCampaignReport godoc
// @Summary      Per-slot attendance report for a campaign
// @Tags         campaigns
// @Produce      json
// @Param        campaignID path     int true "campaign ID"
// @Success      200      {array}    domain.SlotReport
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /campaigns/{campaignID}/report [get]
func (h *CampaignHandler) HandleCampaignReport(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	campaignID, err := parseIDParam(ctx, "campaignID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	report, err := h.svc.CampaignReport(ctx.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrCampaignNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleCampaignReport -> h.svc.CampaignReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}
