package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers the profile routes and administrator user management
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	me := router.Group("/me", middleware.Authorize(policy.Profile, policy.Read))
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateMe)
	}

	admin := func(act policy.Action) gin.HandlerFunc { return middleware.Authorize(policy.Users, act) }
	router.GET("", admin(policy.Read), h.List)
	router.POST("", admin(policy.Create), h.Create)
	router.GET("/:username", admin(policy.Read), h.Get)
	router.PATCH("/:username", admin(policy.Update), h.Update)
	router.DELETE("/:username", admin(policy.Delete), h.Delete)
}

// List returns users ordered by username, optionally filtered by ?search=
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	page, err := pageParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginate(c, page, total, dto.FromModelsToUserResponses(users)))
}

// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMe returns the caller's own account
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(middleware.CurrentUser(c)))
}

// UpdateMe edits the caller's own account; username and role are read-only here
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}
