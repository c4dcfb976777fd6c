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

type AttendanceService interface {
	CheckIn(ctx context.Context, slotID uint, pinCode, nric string) (domain.Attendance, error)
	CheckOut(ctx context.Context, slotID uint, pinCode, nric string) (domain.Attendance, error)
	ListForSlot(ctx context.Context, slotID uint) ([]domain.Attendance, error)
}

type AttendanceHandler struct {
	svc  AttendanceService
	uSvc UserService
}

func NewAttendanceHandler(svc AttendanceService, uSvc UserService) *AttendanceHandler {
	return &AttendanceHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCheckIn godoc
// @Summary      Check an invitee in with a PIN and NRIC
// @Tags         public
// @Produce      json
// @Param        slotID   path       int true "slot ID"
// @Param        request  body       request.AttendanceRequest true "request body"
// @Success      200      {object}   domain.Attendance
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      412      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /public/slots/{slotID}/checkin [post]
func (h *AttendanceHandler) HandleCheckIn(ctx *gin.Context) {
	slotID, err := parseIDParam(ctx, "slotID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.AttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	attendance, err := h.svc.CheckIn(ctx.Request.Context(), slotID, req.PinCode, req.NRIC)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPin):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInvalidPin))
			return
		case errors.Is(err, service.ErrPinAlreadyClaimed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrPinAlreadyClaimed))
			return
		case errors.Is(err, service.ErrNotRegistered):
			response.RenderErr(ctx, response.ErrPreconditionFailed(service.ErrNotRegistered))
			return
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyCheckedIn))
			return
		}

		err = fmt.Errorf("v1.HandleCheckIn -> h.svc.CheckIn -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, attendance)
}

// HandleCheckOut godoc
// @Summary      Check an invitee out with the PIN claimed at check-in
// @Tags         public
// @Produce      json
// @Param        slotID   path       int true "slot ID"
// @Param        request  body       request.AttendanceRequest true "request body"
// @Success      200      {object}   domain.Attendance
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      412      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /public/slots/{slotID}/checkout [post]
func (h *AttendanceHandler) HandleCheckOut(ctx *gin.Context) {
	slotID, err := parseIDParam(ctx, "slotID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.AttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	attendance, err := h.svc.CheckOut(ctx.Request.Context(), slotID, req.PinCode, req.NRIC)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPin):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInvalidPin))
			return
		case errors.Is(err, service.ErrPinNotClaimedBySubmitter):
			response.RenderErr(ctx, response.ErrPreconditionFailed(service.ErrPinNotClaimedBySubmitter))
			return
		case errors.Is(err, service.ErrNotCheckedIn):
			response.RenderErr(ctx, response.ErrPreconditionFailed(service.ErrNotCheckedIn))
			return
		case errors.Is(err, service.ErrNoAttendanceRecord):
			response.RenderErr(ctx, response.ErrPreconditionFailed(service.ErrNoAttendanceRecord))
			return
		case errors.Is(err, service.ErrAlreadyCheckedOut):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyCheckedOut))
			return
		}

		err = fmt.Errorf("v1.HandleCheckOut -> h.svc.CheckOut -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, attendance)
}

// HandleGetSlotAttendance godoc
// @Summary      List a slot's attendance records
// @Tags         attendance
// @Produce      json
// @Param        slotID   path       int true "slot ID"
// @Success      200      {array}    domain.Attendance
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /slots/{slotID}/attendance [get]
func (h *AttendanceHandler) HandleGetSlotAttendance(ctx *gin.Context) {
	if !requireAdmin(ctx, h.uSvc) {
		return
	}

	slotID, err := parseIDParam(ctx, "slotID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	records, err := h.svc.ListForSlot(ctx.Request.Context(), slotID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSlotAttendance -> h.svc.ListForSlot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}
