package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/whats-on/internal/pkg/errors"
	"github.com/whats-on/internal/pkg/utils"
	"github.com/whats-on/internal/pkg/validator"
	"github.com/whats-on/internal/usecase"
	"github.com/whats-on/internal/usecase/dto"
)

// VenueHandler - обработчик площадок и их блокировки
type VenueHandler struct {
	feedUC *usecase.FeedUseCase
	logger *zap.Logger
}

// NewVenueHandler - создание нового VenueHandler
func NewVenueHandler(feedUC *usecase.FeedUseCase, logger *zap.Logger) *VenueHandler {
	return &VenueHandler{
		feedUC: feedUC,
		logger: logger,
	}
}

// GetVenues godoc
// @Summary Площадки города
// @Description Возвращает площадки выбранного города с признаком is_active
// @Tags Venues
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.VenueListResponse}
// @Router /api/v1/venues [get]
func (h *VenueHandler) GetVenues(c *fiber.Ctx) error {
	venues := h.feedUC.Venues(c.UserContext())
	return utils.SendSuccess(c, venues, &utils.Meta{Total: len(venues.Venues)})
}

// ToggleVenue godoc
// @Summary Переключение площадки
// @Description Блокирует или разблокирует площадку. Предпочтения сохраняются в хранилище;
// @Description ошибка сохранения не откатывает переключение.
// @Tags Venues
// @Produce json
// @Param id path int true "ID площадки"
// @Success 200 {object} utils.SuccessResponse{data=dto.VenueListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/venues/{id}/toggle [post]
func (h *VenueHandler) ToggleVenue(c *fiber.Ctx) error {
	var req dto.ToggleVenueRequest
	if err := c.ParamsParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	venues, err := h.feedUC.ToggleVenue(c.UserContext(), req.VenueID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, venues, &utils.Meta{Total: len(venues.Venues)})
}
