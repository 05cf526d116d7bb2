package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fleet-tools-backend/controllers"
	approvalroutehandler "fleet-tools-backend/lib/approval-route"
	"fleet-tools-backend/middleware"
	"fleet-tools-backend/models"
	apimodels "fleet-tools-backend/models/api"
	workflowapimodels "fleet-tools-backend/models/api/workflow"
)

type approvalRouteApiController struct {
	controllers.BaseAPIController
}

func InitApprovalRouteApiRouters(app *fiber.App) {
	controller := approvalRouteApiController{}
	app.Route("approval_route", func(router fiber.Router) {
		router.Get("list", controller.list)
		router.Get("department/:department", controller.getByDepartment)
		router.Post("", middleware.AdminRequired(), controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", middleware.AdminRequired(), controller.update)
			idRoute.Delete("", middleware.AdminRequired(), controller.delete)
		})
	})
}

// @Summary Список
// @Tags Маршруты согласования
// @Description Список маршрутов согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.ApprovalRouteView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_route/list [get]
func (c *approvalRouteApiController) list(ctx *fiber.Ctx) error {
	resp, err := approvalroutehandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка маршрутов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Маршрут подразделения
// @Tags Маршруты согласования
// @Description Маршрут согласования подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   department     		path    string  true         "подразделение"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.ApprovalRouteView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_route/department/{department} [get]
func (c *approvalRouteApiController) getByDepartment(ctx *fiber.Ctx) error {
	department, err := c.GetIDByKey(ctx, "department")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := approvalroutehandler.Instance.GetByDepartment(models.Department(department))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения маршрута подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создание
// @Tags Маршруты согласования
// @Description Создание маршрута согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workflowapimodels.ApprovalRouteData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_route [post]
func (c *approvalRouteApiController) create(ctx *fiber.Ctx) error {
	var payload workflowapimodels.ApprovalRouteData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := approvalroutehandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания маршрута")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение по ИД
// @Tags Маршруты согласования
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.ApprovalRouteView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_route/{id} [get]
func (c *approvalRouteApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := approvalroutehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения маршрута")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Маршруты согласования
// @Description Обновление маршрута согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workflowapimodels.ApprovalRouteData	true	"request body"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_route/{id} [put]
func (c *approvalRouteApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.ApprovalRouteData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = approvalroutehandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления маршрута")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление
// @Tags Маршруты согласования
// @Description Удаление маршрута согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_route/{id} [delete]
func (c *approvalRouteApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = approvalroutehandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления маршрута")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
