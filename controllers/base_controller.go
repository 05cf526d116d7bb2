package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"fleet-tools-backend/fiberlog"
	approvalroute "fleet-tools-backend/lib/approval-route"
	"fleet-tools-backend/lib/workflow"
	"fleet-tools-backend/middleware"
	apimodels "fleet-tools-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key, "")
	if id == "" {
		return "", errors.Errorf("отсутствует параметр запроса (%s)", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.WithField("api_path", ctx.Path())
	if requestID, ok := ctx.Locals(fiberlog.RequestID).(string); ok && requestID != "" {
		logger = logger.WithField(fiberlog.RequestID, requestID)
	}
	if userID := middleware.GetUserID(ctx); userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

// SendError преобразует ошибки бизнес-логики в коды ответа
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, hMsg string) error {
	switch {
	case errors.Is(err, workflow.ErrNotFound) || errors.Is(err, approvalroute.ErrRouteNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, workflow.ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, workflow.ErrConflict) || errors.Is(err, approvalroute.ErrDuplicate) || errors.Is(err, approvalroute.ErrRouteInUse):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, workflow.ErrInvalidState):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(apimodels.NewError(err.Error()))
	}
	logger.WithError(err).Error(hMsg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(hMsg))
}
