package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/whats-on/internal/pkg/errors"
	"github.com/whats-on/internal/pkg/utils"
	"github.com/whats-on/internal/pkg/validator"
	"github.com/whats-on/internal/usecase"
	"github.com/whats-on/internal/usecase/dto"
)

// FeedHandler - обработчик ленты событий
type FeedHandler struct {
	feedUC  *usecase.FeedUseCase
	display *time.Location
	logger  *zap.Logger
}

// NewFeedHandler - создание нового FeedHandler. display - часовой пояс,
// в котором трактуются даты из query string.
func NewFeedHandler(feedUC *usecase.FeedUseCase, display *time.Location, logger *zap.Logger) *FeedHandler {
	if display == nil {
		display = time.Local
	}
	return &FeedHandler{
		feedUC:  feedUC,
		display: display,
		logger:  logger,
	}
}

// GetEvents godoc
// @Summary Лента событий
// @Description Возвращает события выбранного города с учётом фильтров и заблокированных площадок.
// @Description Список типов (types) строится по всем событиям города и не зависит от фильтров.
// @Tags Events
// @Produce json
// @Param type query string false "Тип события (без учёта регистра)"
// @Param date query string false "День (YYYY-MM-DD)"
// @Param from query string false "Начало диапазона включительно (YYYY-MM-DD)"
// @Param to query string false "Конец диапазона включительно (YYYY-MM-DD)"
// @Param age query string false "Возрастная категория" Enums(children, adults)
// @Success 200 {object} utils.SuccessResponse{data=dto.FeedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/events [get]
func (h *FeedHandler) GetEvents(c *fiber.Ctx) error {
	start := time.Now()

	var query dto.FeedQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	if err := validator.Validate(&query); err != nil {
		return utils.SendError(c, err)
	}

	criteria, err := query.Criteria(h.display)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	feed := h.feedUC.Feed(c.UserContext(), criteria)

	h.logger.Debug("Feed served",
		zap.String("location", feed.Location),
		zap.String("state", string(feed.State)),
		zap.Bool("filtered", !criteria.IsEmpty()),
		zap.Int("total", feed.Total))

	return utils.SendSuccess(c, feed, &utils.Meta{
		Total:    feed.Total,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}
