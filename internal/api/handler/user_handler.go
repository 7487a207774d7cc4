package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yamdb/review-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Me godoc
//
// @Summary   Current user profile
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  userResponse
// @Failure   401  {object}  errorResponse
// @Router    /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	u, err := h.service.Me(reqCtx(c), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// UpdateMe godoc. The role field is ignored unless the caller is an admin.
//
// @Summary   Update own profile
// @Tags      users
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      updateUserRequest  true  "Fields to change"
// @Success   200   {object}  userResponse
// @Failure   400   {object}  errorResponse
// @Failure   401   {object}  errorResponse
// @Router    /users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	u, err := h.service.UpdateMe(reqCtx(c), actor(c), toUserPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// List godoc
//
// @Summary   List users
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Param     search  query     string  false  "Username contains"
// @Param     limit   query     int     false  "Page size (default 20, max 100)"
// @Param     offset  query     int     false  "Offset"
// @Success   200     {object}  listResponse[userResponse]
// @Failure   403     {object}  errorResponse
// @Router    /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	res, err := h.service.List(reqCtx(c), actor(c), c.QueryParam("search"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res, toUserResponse))
}

// Create godoc
//
// @Summary   Create a user
// @Tags      users
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      createUserRequest  true  "New user"
// @Success   201   {object}  userResponse
// @Failure   400   {object}  errorResponse
// @Failure   403   {object}  errorResponse
// @Router    /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	u, err := h.service.Create(reqCtx(c), actor(c), ports.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

// Get godoc
//
// @Summary   Get a user by username
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Param     username  path      string  true  "Username"
// @Success   200       {object}  userResponse
// @Failure   403       {object}  errorResponse
// @Failure   404       {object}  errorResponse
// @Router    /users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.service.Get(reqCtx(c), actor(c), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Update godoc
//
// @Summary   Update a user
// @Tags      users
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     username  path      string             true  "Username"
// @Param     body      body      updateUserRequest  true  "Fields to change"
// @Success   200       {object}  userResponse
// @Failure   400       {object}  errorResponse
// @Failure   403       {object}  errorResponse
// @Failure   404       {object}  errorResponse
// @Router    /users/{username} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	u, err := h.service.Update(reqCtx(c), actor(c), c.Param("username"), toUserPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Delete godoc
//
// @Summary   Delete a user
// @Tags      users
// @Security  BearerAuth
// @Param     username  path  string  true  "Username"
// @Success   204
// @Failure   403  {object}  errorResponse
// @Failure   404  {object}  errorResponse
// @Router    /users/{username} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(reqCtx(c), actor(c), c.Param("username")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
