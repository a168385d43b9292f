package handler

import (
	"github.com/labstack/echo/v4"

	"staygo/internal/domain/entity"
	"staygo/internal/usecase"
	"staygo/pkg/response"
	"staygo/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
	Location string `json:"location"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		Name:     req.Name,
		Bio:      req.Bio,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
		Location: req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

// Admin handlers.

func (h *UserHandler) ListUsers(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	users, total, err := h.userUseCase.ListUsers(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, pagination.Page, pagination.PageSize)
}

func (h *UserHandler) MakeHost(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.SetRole(c.Request().Context(), uid, c.Param("id"), entity.RoleHost)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) RevokeHost(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.SetRole(c.Request().Context(), uid, c.Param("id"), entity.RoleUser)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.userUseCase.DeleteUser(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "User deleted"})
}
