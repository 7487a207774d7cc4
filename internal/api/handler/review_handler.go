package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yamdb/review-api/internal/api/metrics"
	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

// ReviewHandler serves reviews and their comments, nested under a title.
type ReviewHandler struct {
	reviews  ports.ReviewService
	comments ports.CommentService
}

func NewReviewHandler(reviews ports.ReviewService, comments ports.CommentService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, comments: comments}
}

func reviewPath(c echo.Context) (titleID, reviewID int64, err error) {
	if titleID, err = pathID(c, "title_id", domain.ErrTitleNotFound); err != nil {
		return 0, 0, err
	}
	if reviewID, err = pathID(c, "review_id", domain.ErrReviewNotFound); err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// ListReviews godoc
//
// @Summary  List reviews of a title
// @Tags     reviews
// @Produce  json
// @Param    title_id  path      int  true   "Title ID"
// @Param    limit     query     int  false  "Page size (default 20, max 100)"
// @Param    offset    query     int  false  "Offset"
// @Success  200       {object}  listResponse[reviewResponse]
// @Failure  404       {object}  errorResponse
// @Router   /titles/{title_id}/reviews [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	titleID, err := pathID(c, "title_id", domain.ErrTitleNotFound)
	if err != nil {
		return err
	}
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	res, err := h.reviews.List(reqCtx(c), titleID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res, toReviewResponse))
}

// CreateReview godoc
//
// @Summary   Review a title
// @Tags      reviews
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     title_id  path      int            true  "Title ID"
// @Param     body      body      reviewRequest  true  "Text and score (1..10)"
// @Success   201       {object}  reviewResponse
// @Failure   400       {object}  errorResponse  "validation or duplicate_review"
// @Failure   401       {object}  errorResponse
// @Failure   404       {object}  errorResponse
// @Router    /titles/{title_id}/reviews [post]
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	titleID, err := pathID(c, "title_id", domain.ErrTitleNotFound)
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.reviews.Create(reqCtx(c), actor(c), ports.CreateReviewInput{
		TitleID: titleID,
		Text:    req.Text,
		Score:   req.Score,
	})
	if err != nil {
		return err
	}

	metrics.ReviewsCreatedTotal.Inc()
	metrics.ReviewScores.Observe(float64(r.Score))
	return c.JSON(http.StatusCreated, toReviewResponse(r))
}

// GetReview godoc
//
// @Summary  Get a review
// @Tags     reviews
// @Produce  json
// @Param    title_id   path      int  true  "Title ID"
// @Param    review_id  path      int  true  "Review ID"
// @Success  200        {object}  reviewResponse
// @Failure  404        {object}  errorResponse
// @Router   /titles/{title_id}/reviews/{review_id} [get]
func (h *ReviewHandler) GetReview(c echo.Context) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}
	r, err := h.reviews.Get(reqCtx(c), titleID, reviewID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponse(r))
}

// UpdateReview godoc
//
// @Summary   Edit a review
// @Tags      reviews
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     title_id   path      int                 true  "Title ID"
// @Param     review_id  path      int                 true  "Review ID"
// @Param     body       body      reviewPatchRequest  true  "Fields to change"
// @Success   200        {object}  reviewResponse
// @Failure   400        {object}  errorResponse
// @Failure   401        {object}  errorResponse
// @Failure   403        {object}  errorResponse
// @Failure   404        {object}  errorResponse
// @Router    /titles/{title_id}/reviews/{review_id} [patch]
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}
	var req reviewPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.reviews.Update(reqCtx(c), actor(c), titleID, reviewID, ports.UpdateReviewInput{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponse(r))
}

// DeleteReview godoc
//
// @Summary   Delete a review and its comments
// @Tags      reviews
// @Security  BearerAuth
// @Param     title_id   path  int  true  "Title ID"
// @Param     review_id  path  int  true  "Review ID"
// @Success   204
// @Failure   401  {object}  errorResponse
// @Failure   403  {object}  errorResponse
// @Failure   404  {object}  errorResponse
// @Router    /titles/{title_id}/reviews/{review_id} [delete]
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}
	if err := h.reviews.Delete(reqCtx(c), actor(c), titleID, reviewID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListComments godoc
//
// @Summary  List comments of a review, newest first
// @Tags     comments
// @Produce  json
// @Param    title_id   path      int  true   "Title ID"
// @Param    review_id  path      int  true   "Review ID"
// @Param    limit      query     int  false  "Page size (default 20, max 100)"
// @Param    offset     query     int  false  "Offset"
// @Success  200        {object}  listResponse[commentResponse]
// @Failure  404        {object}  errorResponse
// @Router   /titles/{title_id}/reviews/{review_id}/comments [get]
func (h *ReviewHandler) ListComments(c echo.Context) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	res, err := h.comments.List(reqCtx(c), titleID, reviewID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res, toCommentResponse))
}

// CreateComment godoc
//
// @Summary   Comment on a review
// @Tags      comments
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     title_id   path      int             true  "Title ID"
// @Param     review_id  path      int             true  "Review ID"
// @Param     body       body      commentRequest  true  "Comment text"
// @Success   201        {object}  commentResponse
// @Failure   400        {object}  errorResponse
// @Failure   401        {object}  errorResponse
// @Failure   404        {object}  errorResponse
// @Router    /titles/{title_id}/reviews/{review_id}/comments [post]
func (h *ReviewHandler) CreateComment(c echo.Context) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cm, err := h.comments.Create(reqCtx(c), actor(c), ports.CreateCommentInput{
		TitleID:  titleID,
		ReviewID: reviewID,
		Text:     req.Text,
	})
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toCommentResponse(cm))
}

func commentPath(c echo.Context) (titleID, reviewID, commentID int64, err error) {
	if titleID, reviewID, err = reviewPath(c); err != nil {
		return 0, 0, 0, err
	}
	if commentID, err = pathID(c, "comment_id", domain.ErrCommentNotFound); err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}

// GetComment godoc
//
// @Summary  Get a comment
// @Tags     comments
// @Produce  json
// @Param    title_id    path      int  true  "Title ID"
// @Param    review_id   path      int  true  "Review ID"
// @Param    comment_id  path      int  true  "Comment ID"
// @Success  200         {object}  commentResponse
// @Failure  404         {object}  errorResponse
// @Router   /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [get]
func (h *ReviewHandler) GetComment(c echo.Context) error {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		return err
	}
	cm, err := h.comments.Get(reqCtx(c), titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponse(cm))
}

// UpdateComment godoc
//
// @Summary   Edit a comment
// @Tags      comments
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     title_id    path      int                  true  "Title ID"
// @Param     review_id   path      int                  true  "Review ID"
// @Param     comment_id  path      int                  true  "Comment ID"
// @Param     body        body      commentPatchRequest  true  "Fields to change"
// @Success   200         {object}  commentResponse
// @Failure   400         {object}  errorResponse
// @Failure   401         {object}  errorResponse
// @Failure   403         {object}  errorResponse
// @Failure   404         {object}  errorResponse
// @Router    /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [patch]
func (h *ReviewHandler) UpdateComment(c echo.Context) error {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		return err
	}
	var req commentPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cm, err := h.comments.Update(reqCtx(c), actor(c), titleID, reviewID, commentID, ports.UpdateCommentInput{Text: req.Text})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponse(cm))
}

// DeleteComment godoc
//
// @Summary   Delete a comment
// @Tags      comments
// @Security  BearerAuth
// @Param     title_id    path  int  true  "Title ID"
// @Param     review_id   path  int  true  "Review ID"
// @Param     comment_id  path  int  true  "Comment ID"
// @Success   204
// @Failure   401  {object}  errorResponse
// @Failure   403  {object}  errorResponse
// @Failure   404  {object}  errorResponse
// @Router    /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [delete]
func (h *ReviewHandler) DeleteComment(c echo.Context) error {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		return err
	}
	if err := h.comments.Delete(reqCtx(c), actor(c), titleID, reviewID, commentID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
