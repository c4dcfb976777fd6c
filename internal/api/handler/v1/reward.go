package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paul-techiesapp/martin-aia/internal/api/handler/v1/response"
	"github.com/paul-techiesapp/martin-aia/internal/domain"
	"github.com/paul-techiesapp/martin-aia/internal/service"
)

type RewardService interface {
	ListForAgent(ctx context.Context, userID uint) ([]domain.Reward, error)
	Summary(ctx context.Context, userID uint) (domain.RewardSummary, error)
}

type RewardHandler struct {
	svc RewardService
}

func NewRewardHandler(svc RewardService) *RewardHandler {
	return &RewardHandler{
		svc: svc,
	}
}

// HandleGetMyRewards godoc
// @Summary      List the authenticated agent's accrued rewards
// @Tags         rewards
// @Produce      json
// @Success      200      {array}    domain.Reward
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /rewards [get]
func (h *RewardHandler) HandleGetMyRewards(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	rewards, err := h.svc.ListForAgent(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrAgentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetMyRewards -> h.svc.ListForAgent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, rewards)
}

// HandleGetMyRewardSummary godoc
// @Summary      Reward summary for the authenticated agent
// @Tags         rewards
// @Produce      json
// @Success      200      {object}   domain.RewardSummary
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /rewards/summary [get]
func (h *RewardHandler) HandleGetMyRewardSummary(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrAgentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetMyRewardSummary -> h.svc.Summary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
