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

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	GetAgentByUserID(ctx context.Context, userID uint) (domain.Agent, error)
	GetAgent(ctx context.Context, id uint) (domain.Agent, error)
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	UpdateAgent(ctx context.Context, agent domain.Agent) (domain.Agent, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path       int true "user ID"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /users/{userID} [get]
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleGetMyAgent godoc
// @Summary      Get the authenticated user's agent profile
// @Tags         agents
// @Produce      json
// @Success      200      {object}   domain.Agent
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /agents/me [get]
func (h *UserHandler) HandleGetMyAgent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	agent, err := h.svc.GetAgentByUserID(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAgentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetMyAgent -> h.svc.GetAgentByUserID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, agent)
}

// HandleListAgents godoc
// @Summary      List all agents
// @Tags         agents
// @Produce      json
// @Success      200      {array}    domain.Agent
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /agents [get]
func (h *UserHandler) HandleListAgents(ctx *gin.Context) {
	if !requireAdmin(ctx, h.svc) {
		return
	}

	agents, err := h.svc.ListAgents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAgents -> h.svc.ListAgents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, agents)
}

// HandleGetAgent godoc
// @Summary      Get an agent by ID
// @Tags         agents
// @Produce      json
// @Param        agentID  path       int true "agent ID"
// @Success      200      {object}   domain.Agent
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /agents/{agentID} [get]
func (h *UserHandler) HandleGetAgent(ctx *gin.Context) {
	if !requireAdmin(ctx, h.svc) {
		return
	}

	agentID, err := parseIDParam(ctx, "agentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	agent, err := h.svc.GetAgent(ctx.Request.Context(), agentID)
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAgentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetAgent -> h.svc.GetAgent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, agent)
}

// HandleUpdateAgent godoc
// @Summary      Update an agent's profile, tier or status
// @Tags         agents
// @Produce      json
// @Param        agentID  path       int true "agent ID"
// @Param        request  body       request.UpdateAgentRequest true "request body"
// @Success      200      {object}   domain.Agent
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /agents/{agentID} [put]
func (h *UserHandler) HandleUpdateAgent(ctx *gin.Context) {
	if !requireAdmin(ctx, h.svc) {
		return
	}

	agentID, err := parseIDParam(ctx, "agentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateAgentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	agent, err := h.svc.UpdateAgent(ctx.Request.Context(), domain.Agent{
		ID:       agentID,
		Name:     req.Name,
		Phone:    req.Phone,
		UnitName: req.UnitName,
		TierID:   req.TierID,
		Status:   domain.AgentStatus(req.Status),
	})
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAgentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateAgent -> h.svc.UpdateAgent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, agent)
}
