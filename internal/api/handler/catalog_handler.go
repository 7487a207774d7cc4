package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

// CatalogHandler serves categories, genres and titles.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListCategories godoc
//
// @Summary  List categories
// @Tags     categories
// @Produce  json
// @Param    search  query     string  false  "Name contains"
// @Param    limit   query     int     false  "Page size (default 20, max 100)"
// @Param    offset  query     int     false  "Offset"
// @Success  200     {object}  listResponse[slugResponse]
// @Router   /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	res, err := h.service.ListCategories(reqCtx(c), c.QueryParam("search"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res, toCategoryResponse))
}

// CreateCategory godoc
//
// @Summary   Create a category
// @Tags      categories
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      slugRequest  true  "Category"
// @Success   201   {object}  slugResponse
// @Failure   400   {object}  errorResponse
// @Failure   403   {object}  errorResponse
// @Router    /categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req slugRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cat, err := h.service.CreateCategory(reqCtx(c), actor(c), ports.SlugInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(*cat))
}

// DeleteCategory godoc
//
// @Summary   Delete a category
// @Tags      categories
// @Security  BearerAuth
// @Param     slug  path  string  true  "Category slug"
// @Success   204
// @Failure   400  {object}  errorResponse  "still used by titles"
// @Failure   403  {object}  errorResponse
// @Failure   404  {object}  errorResponse
// @Router    /categories/{slug} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.service.DeleteCategory(reqCtx(c), actor(c), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListGenres godoc
//
// @Summary  List genres
// @Tags     genres
// @Produce  json
// @Param    search  query     string  false  "Name contains"
// @Param    limit   query     int     false  "Page size (default 20, max 100)"
// @Param    offset  query     int     false  "Offset"
// @Success  200     {object}  listResponse[slugResponse]
// @Router   /genres [get]
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	res, err := h.service.ListGenres(reqCtx(c), c.QueryParam("search"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res, toGenreResponse))
}

// CreateGenre godoc
//
// @Summary   Create a genre
// @Tags      genres
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      slugRequest  true  "Genre"
// @Success   201   {object}  slugResponse
// @Failure   400   {object}  errorResponse
// @Failure   403   {object}  errorResponse
// @Router    /genres [post]
func (h *CatalogHandler) CreateGenre(c echo.Context) error {
	var req slugRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	g, err := h.service.CreateGenre(reqCtx(c), actor(c), ports.SlugInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toGenreResponse(*g))
}

// DeleteGenre godoc
//
// @Summary   Delete a genre
// @Tags      genres
// @Security  BearerAuth
// @Param     slug  path  string  true  "Genre slug"
// @Success   204
// @Failure   403  {object}  errorResponse
// @Failure   404  {object}  errorResponse
// @Router    /genres/{slug} [delete]
func (h *CatalogHandler) DeleteGenre(c echo.Context) error {
	if err := h.service.DeleteGenre(reqCtx(c), actor(c), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTitles godoc
//
// @Summary  List titles
// @Tags     titles
// @Produce  json
// @Param    genre     query     string  false  "Genre slug"
// @Param    category  query     string  false  "Category slug"
// @Param    name      query     string  false  "Name contains"
// @Param    year      query     int     false  "Release year"
// @Param    limit     query     int     false  "Page size (default 20, max 100)"
// @Param    offset    query     int     false  "Offset"
// @Success  200       {object}  listResponse[titleResponse]
// @Failure  400       {object}  errorResponse
// @Router   /titles [get]
func (h *CatalogHandler) ListTitles(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	filter := ports.TitleFilter{
		Genre:    c.QueryParam("genre"),
		Category: c.QueryParam("category"),
		Name:     c.QueryParam("name"),
		Page:     page,
	}
	if v := c.QueryParam("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return domain.NewValidationError("year", "must be an integer")
		}
		filter.Year = year
	}

	res, err := h.service.ListTitles(reqCtx(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res, toTitleResponse))
}

// GetTitle godoc
//
// @Summary  Get a title with its current rating
// @Tags     titles
// @Produce  json
// @Param    title_id  path      int  true  "Title ID"
// @Success  200       {object}  titleResponse
// @Failure  404       {object}  errorResponse
// @Router   /titles/{title_id} [get]
func (h *CatalogHandler) GetTitle(c echo.Context) error {
	id, err := pathID(c, "title_id", domain.ErrTitleNotFound)
	if err != nil {
		return err
	}
	t, err := h.service.GetTitle(reqCtx(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTitleResponse(t))
}

// CreateTitle godoc
//
// @Summary   Create a title
// @Tags      titles
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      titleRequest  true  "Title; category and genre are slugs"
// @Success   201   {object}  titleResponse
// @Failure   400   {object}  errorResponse
// @Failure   403   {object}  errorResponse
// @Router    /titles [post]
func (h *CatalogHandler) CreateTitle(c echo.Context) error {
	var req titleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.service.CreateTitle(reqCtx(c), actor(c), toTitleInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTitleResponse(t))
}

// UpdateTitle godoc
//
// @Summary   Update a title
// @Tags      titles
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     title_id  path      int                true  "Title ID"
// @Param     body      body      titlePatchRequest  true  "Fields to change"
// @Success   200       {object}  titleResponse
// @Failure   400       {object}  errorResponse
// @Failure   403       {object}  errorResponse
// @Failure   404       {object}  errorResponse
// @Router    /titles/{title_id} [patch]
func (h *CatalogHandler) UpdateTitle(c echo.Context) error {
	id, err := pathID(c, "title_id", domain.ErrTitleNotFound)
	if err != nil {
		return err
	}
	var req titlePatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.service.UpdateTitle(reqCtx(c), actor(c), id, toTitlePatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTitleResponse(t))
}

// DeleteTitle godoc
//
// @Summary   Delete a title with its reviews and comments
// @Tags      titles
// @Security  BearerAuth
// @Param     title_id  path  int  true  "Title ID"
// @Success   204
// @Failure   403  {object}  errorResponse
// @Failure   404  {object}  errorResponse
// @Router    /titles/{title_id} [delete]
func (h *CatalogHandler) DeleteTitle(c echo.Context) error {
	id, err := pathID(c, "title_id", domain.ErrTitleNotFound)
	if err != nil {
		return err
	}
	if err := h.service.DeleteTitle(reqCtx(c), actor(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
