package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// NewsHandler handles HTTP requests for news articles.
type NewsHandler struct {
	service ports.NewsService
	views   ViewDispatcher
}

func NewNewsHandler(service ports.NewsService, views ViewDispatcher) *NewsHandler {
	return &NewsHandler{service: service, views: views}
}

// Create handles POST /v1/news.
//
// @Summary      Create a news article
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNewsRequest  true  "Article details"
// @Success      201   {object}  newsResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/news [post]
func (h *NewsHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createNewsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.service.Create(c.Request().Context(), toCreateNewsInput(req, actor))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toNewsResponse(article))
}

// Update handles PATCH /v1/news/:id.
//
// @Summary      Edit an owned article before publishing
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Article id"
// @Param        body  body      updateNewsRequest  true  "Fields to change"
// @Success      200   {object}  newsResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/news/{id} [patch]
func (h *NewsHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateNewsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.service.Update(c.Request().Context(), toUpdateNewsInput(req, actor, c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNewsResponse(article))
}

// Submit handles POST /v1/news/:id/submit — draft into the review queue.
//
// @Summary      Submit a draft for review
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Article id"
// @Success      200  {object}  newsResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/news/{id}/submit [post]
func (h *NewsHandler) Submit(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	article, err := h.service.Submit(c.Request().Context(), ports.SubmitNewsInput{
		Actor:  actor,
		NewsID: c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNewsResponse(article))
}

// Delete handles DELETE /v1/news/:id.
//
// @Summary      Delete an article
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Article id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/news/{id} [delete]
func (h *NewsHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ports.DeleteNewsInput{
		Actor:  actor,
		NewsID: c.Param("id"),
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/news/:slug. Public; a successful view of a published
// article enqueues a deduplicated view hit.
//
// @Summary      Get an article by slug
// @Tags         news
// @Produce      json
// @Param        slug  path      string  true  "Article slug"
// @Success      200   {object}  newsResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/news/{slug} [get]
func (h *NewsHandler) Get(c echo.Context) error {
	article, err := h.service.Get(c.Request().Context(), ports.GetNewsInput{
		Actor: optionalActor(c),
		Slug:  c.Param("slug"),
	})
	if err != nil {
		return err
	}

	if article.Status == domain.NewsPublished {
		h.views.Enqueue(ports.ViewHit{
			ContentType: ports.ViewContentNews,
			ContentID:   article.ID,
			Fingerprint: viewerFingerprint(c),
			At:          time.Now(),
		})
	}

	return c.JSON(http.StatusOK, toNewsResponse(article))
}

// ListPublic handles GET /v1/news — published articles only.
//
// @Summary      List published news
// @Tags         news
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        language  query     string  false  "Language filter"
// @Param        tag       query     string  false  "Tag filter"
// @Param        featured  query     bool    false  "Featured articles only"
// @Param        search    query     string  false  "Full-text search"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listNewsResponse
// @Router       /v1/news [get]
func (h *NewsHandler) ListPublic(c echo.Context) error {
	in := ports.ListNewsInput{
		Category: c.QueryParam("category"),
		Language: domain.NewsLanguage(c.QueryParam("language")),
		Tag:      c.QueryParam("tag"),
		Search:   c.QueryParam("search"),
		Page:     bindPage(c),
	}
	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "featured must be a boolean")
		}
		in.Featured = &featured
	}

	articles, page, err := h.service.ListPublic(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListNewsResponse(articles, page))
}

// ListOwn handles GET /v1/me/news — the caller's own articles, any status.
//
// @Summary      List own articles
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter"
// @Success      200     {object}  listNewsResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/me/news [get]
func (h *NewsHandler) ListOwn(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	articles, page, err := h.service.ListOwn(c.Request().Context(), ports.ListOwnNewsInput{
		Actor:  actor,
		Status: domain.NewsStatus(c.QueryParam("status")),
		Page:   bindPage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListNewsResponse(articles, page))
}

// ModerationQueue handles GET /v1/admin/news.
//
// @Summary      List articles in the moderation queue
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter (defaults to pending)"
// @Success      200     {object}  listNewsResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/admin/news [get]
func (h *NewsHandler) ModerationQueue(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	articles, page, err := h.service.ModerationQueue(c.Request().Context(), ports.NewsModerationQueueInput{
		Actor:  actor,
		Status: domain.NewsStatus(c.QueryParam("status")),
		Page:   bindPage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListNewsResponse(articles, page))
}

// Approve handles POST /v1/admin/news/:id/approve.
//
// @Summary      Approve a pending article
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Article id"
// @Success      200  {object}  newsResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/admin/news/{id}/approve [post]
func (h *NewsHandler) Approve(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	article, err := h.service.Approve(c.Request().Context(), ports.ApproveNewsInput{
		Actor:  actor,
		NewsID: c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNewsResponse(article))
}

// Reject handles POST /v1/admin/news/:id/reject.
//
// @Summary      Reject a pending article
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Article id"
// @Param        body  body      rejectRequest  true  "Rejection reason"
// @Success      200   {object}  newsResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/news/{id}/reject [post]
func (h *NewsHandler) Reject(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.service.Reject(c.Request().Context(), ports.RejectNewsInput{
		Actor:  actor,
		NewsID: c.Param("id"),
		Reason: req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNewsResponse(article))
}

// Feature handles PUT /v1/admin/news/:id/feature — toggles the featured flag
// that the public listing's featured filter selects on.
//
// @Summary      Feature or unfeature an article
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Article id"
// @Param        body  body      featureNewsRequest  true  "Featured flag"
// @Success      200   {object}  newsResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/news/{id}/feature [put]
func (h *NewsHandler) Feature(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req featureNewsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.service.Feature(c.Request().Context(), ports.FeatureNewsInput{
		Actor:    actor,
		NewsID:   c.Param("id"),
		Featured: *req.Featured,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNewsResponse(article))
}

// Publish handles POST /v1/admin/news/:id/publish — approved articles go live.
//
// @Summary      Publish an approved article
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Article id"
// @Success      200  {object}  newsResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/news/{id}/publish [post]
func (h *NewsHandler) Publish(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	article, err := h.service.Publish(c.Request().Context(), ports.PublishNewsInput{
		Actor:  actor,
		NewsID: c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNewsResponse(article))
}
