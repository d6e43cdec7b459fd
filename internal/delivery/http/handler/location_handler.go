package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/pkg/errors"
	"github.com/whats-on/internal/pkg/utils"
	"github.com/whats-on/internal/pkg/validator"
	"github.com/whats-on/internal/usecase"
	"github.com/whats-on/internal/usecase/dto"
)

// LocationHandler - обработчик выбора города
type LocationHandler struct {
	feedUC *usecase.FeedUseCase
	logger *zap.Logger
}

// NewLocationHandler - создание нового LocationHandler
func NewLocationHandler(feedUC *usecase.FeedUseCase, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		feedUC: feedUC,
		logger: logger,
	}
}

// ListLocations godoc
// @Summary Список городов
// @Description Возвращает известные города и текущий выбранный город
// @Tags Locations
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationsResponse}
// @Router /api/v1/locations [get]
func (h *LocationHandler) ListLocations(c *fiber.Ctx) error {
	locations := make([]string, 0, len(domain.KnownLocations))
	for _, loc := range domain.KnownLocations {
		locations = append(locations, loc.String())
	}

	return utils.SendSuccess(c, dto.LocationsResponse{
		Locations: locations,
		Selected:  h.feedUC.Location().String(),
	}, &utils.Meta{Total: len(locations)})
}

// SelectLocation godoc
// @Summary Выбор города
// @Description Выбирает город и загружает его события и площадки. Повторный выбор того же города повторяет загрузку.
// @Description Ошибка загрузки каталога отражается в поле state ответа, а не в HTTP статусе.
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body dto.SelectLocationRequest true "Город"
// @Success 200 {object} utils.SuccessResponse{data=dto.FeedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/location [put]
func (h *LocationHandler) SelectLocation(c *fiber.Ctx) error {
	var req dto.SelectLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	err := h.feedUC.SelectLocation(c.UserContext(), domain.Location(req.Location))
	if err != nil {
		if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrLocationRequired.Code {
			return utils.SendError(c, err)
		}
		h.logger.Warn("Location selected with catalog failure",
			zap.String("location", req.Location),
			zap.Error(err))
	}

	feed := h.feedUC.Feed(c.UserContext(), domain.FilterCriteria{})
	return utils.SendSuccess(c, feed, &utils.Meta{Total: feed.Total})
}
