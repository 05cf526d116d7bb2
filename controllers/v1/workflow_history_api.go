package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fleet-tools-backend/controllers"
	workflowhandler "fleet-tools-backend/lib/workflow"
	"fleet-tools-backend/middleware"
	apimodels "fleet-tools-backend/models/api"
	workflowapimodels "fleet-tools-backend/models/api/workflow"
)

type workflowHistoryApiController struct {
	controllers.BaseAPIController
}

func InitWorkflowHistoryApiRouters(app *fiber.App) {
	controller := workflowHistoryApiController{}
	app.Route("history", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.exportXlsx)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("card", controller.card)
		})
	})
	app.Put("request/:id/invalidate", middleware.AdminRequired(), controller.invalidate)
}

// @Summary Архив заявок
// @Tags Архив
// @Description Список завершенных заявок
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workflowapimodels.RequestFilter	true	"request filter body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]workflowapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/history/list [post]
func (c *workflowHistoryApiController) list(ctx *fiber.Ctx) error {
	var payload workflowapimodels.RequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := workflowhandler.Instance.History(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения архива заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Экспорт архива
// @Tags Архив
// @Description Экспорт архива заявок в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workflowapimodels.RequestFilter	true	"request filter body"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/history/export [post]
func (c *workflowHistoryApiController) exportXlsx(ctx *fiber.Ctx) error {
	var payload workflowapimodels.RequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := workflowhandler.Instance.HistoryExportXlsx(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка экспорта архива заявок")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, "attachment; filename=\"history.xlsx\"")
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Получение по ИД
// @Tags Архив
// @Description Архивная запись заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/history/{id} [get]
func (c *workflowHistoryApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := workflowhandler.Instance.HistoryByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения архивной заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Карточка заявки
// @Tags Архив
// @Description Печатная карточка архивной заявки в pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/history/{id}/card [get]
func (c *workflowHistoryApiController) card(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, err := workflowhandler.Instance.HistoryCard(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования карточки заявки")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, "attachment; filename=\"request.pdf\"")
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Аннулировать
// @Tags Архив
// @Description Аннулирование завершенной заявки администратором
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workflowapimodels.InvalidateData	true	"request body"
// @Param   id          		path    string  true         "original request ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/invalidate [put]
func (c *workflowHistoryApiController) invalidate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.InvalidateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	historyID, err := workflowhandler.Instance.Invalidate(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка аннулирования заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(historyID))
}
