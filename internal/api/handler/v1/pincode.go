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

type PinCodeService interface {
	Generate(ctx context.Context, slotID uint, count int) ([]domain.PinCode, error)
	List(ctx context.Context, slotID uint) ([]domain.PinCode, error)
	Inventory(ctx context.Context, slotID uint) (domain.PinInventory, error)
	DeleteUnused(ctx context.Context, slotID uint) (int64, error)
	DeleteAll(ctx context.Context, slotID uint) (int64, error)
}

type PinCodeHandler struct {
	svc  PinCodeService
	uSvc UserService
}

func NewPinCodeHandler(svc PinCodeService, uSvc UserService) *PinCodeHandler {
	return &PinCodeHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGeneratePinCodes godoc
// @Summary      Generate fresh PIN codes for a slot
// @Tags         pin-codes
// @Produce      json
// @Param        slotID   path       int true "slot ID"
// @Param        request  body       request.GeneratePinCodesRequest true "request body"
// @Success      201      {array}    domain.PinCode
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /slots/{slotID}/pin-codes [post]
func (h *PinCodeHandler) HandleGeneratePinCodes(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	slotID, err := parseIDParam(ctx, "slotID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.GeneratePinCodesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	pins, err := h.svc.Generate(ctx.Request.Context(), slotID, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSlotNotFound))
			return
		case errors.Is(err, service.ErrPinPoolExhausted):
			response.RenderErr(ctx, response.ErrConflict(service.ErrPinPoolExhausted))
			return
		case errors.Is(err, service.ErrInvalidPinCount):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidPinCount))
			return
		}

		err = fmt.Errorf("v1.HandleGeneratePinCodes -> h.svc.Generate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, pins)
}

// HandleGetPinCodes godoc
// @Summary      List a slot's PIN codes
// @Tags         pin-codes
// @Produce      json
// @Param        slotID   path       int true "slot ID"
// @Success      200      {array}    domain.PinCode
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /slots/{slotID}/pin-codes [get]
func (h *PinCodeHandler) HandleGetPinCodes(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	slotID, err := parseIDParam(ctx, "slotID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	pins, err := h.svc.List(ctx.Request.Context(), slotID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPinCodes -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, pins)
}

// HandleGetPinInventory godoc
// @Summary      Get a slot's PIN pool summary
// @Tags         pin-codes
// @Produce      json
// @Param        slotID   path       int true "slot ID"
// @Success      200      {object}   domain.PinInventory
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /slots/{slotID}/pin-codes/inventory [get]
func (h *PinCodeHandler) HandleGetPinInventory(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	slotID, err := parseIDParam(ctx, "slotID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	inv, err := h.svc.Inventory(ctx.Request.Context(), slotID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPinInventory -> h.svc.Inventory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, inv)
}

// HandleDeleteUnusedPinCodes godoc
// @Summary      Delete a slot's unused PIN codes
// @Tags         pin-codes
// @Produce      json
// @Param        slotID   path       int true "slot ID"
// @Success      200      {object}   response.DeletedPinsResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /slots/{slotID}/pin-codes/unused [delete]
func (h *PinCodeHandler) HandleDeleteUnusedPinCodes(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	slotID, err := parseIDParam(ctx, "slotID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	deleted, err := h.svc.DeleteUnused(ctx.Request.Context(), slotID)
	if err != nil {
		err = fmt.Errorf("v1.HandleDeleteUnusedPinCodes -> h.svc.DeleteUnused -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DeletedPinsResponse{Deleted: deleted})
}

// HandleDeleteAllPinCodes godoc
// @Summary      Delete all of a slot's PIN codes
// @Tags         pin-codes
// @Produce      json
// @Param        slotID   path       int true "slot ID"
// @Success      200      {object}   response.DeletedPinsResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /slots/{slotID}/pin-codes [delete]
func (h *PinCodeHandler) HandleDeleteAllPinCodes(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	slotID, err := parseIDParam(ctx, "slotID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	deleted, err := h.svc.DeleteAll(ctx.Request.Context(), slotID)
	if err != nil {
		err = fmt.Errorf("v1.HandleDeleteAllPinCodes -> h.svc.DeleteAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DeletedPinsResponse{Deleted: deleted})
}
