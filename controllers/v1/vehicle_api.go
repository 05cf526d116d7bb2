package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fleet-tools-backend/controllers"
	vehiclehandler "fleet-tools-backend/lib/vehicle"
	"fleet-tools-backend/middleware"
	apimodels "fleet-tools-backend/models/api"
	vehicleapimodels "fleet-tools-backend/models/api/vehicle"
)

type vehicleApiController struct {
	controllers.BaseAPIController
}

func InitVehicleApiRouters(app *fiber.App) {
	controller := vehicleApiController{}
	app.Route("vehicle", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", middleware.AdminRequired(), controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", middleware.AdminRequired(), controller.update)
			idRoute.Delete("", middleware.AdminRequired(), controller.delete)
			idRoute.Get("assignments", controller.assignments)
		})
	})
}

// @Summary Список
// @Tags Транспортные средства
// @Description Список транспортных средств
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 vehicleapimodels.VehicleFilter	true	"request filter body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]vehicleapimodels.VehicleView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vehicle/list [post]
func (c *vehicleApiController) list(ctx *fiber.Ctx) error {
	var payload vehicleapimodels.VehicleFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := vehiclehandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка транспортных средств")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Создание
// @Tags Транспортные средства
// @Description Создание транспортного средства
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 vehicleapimodels.VehicleData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vehicle [post]
func (c *vehicleApiController) create(ctx *fiber.Ctx) error {
	var payload vehicleapimodels.VehicleData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := vehiclehandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания транспортного средства")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение по ИД
// @Tags Транспортные средства
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=vehicleapimodels.VehicleView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vehicle/{id} [get]
func (c *vehicleApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := vehiclehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения транспортного средства")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Транспортные средства
// @Description Обновление транспортного средства
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 vehicleapimodels.VehicleData	true	"request body"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vehicle/{id} [put]
func (c *vehicleApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload vehicleapimodels.VehicleData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = vehiclehandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления транспортного средства")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление
// @Tags Транспортные средства
// @Description Удаление транспортного средства
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vehicle/{id} [delete]
func (c *vehicleApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = vehiclehandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления транспортного средства")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary История закреплений
// @Tags Транспортные средства
// @Description Окна закрепления ТС за сотрудниками
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]vehicleapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vehicle/{id}/assignments [get]
func (c *vehicleApiController) assignments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := vehiclehandler.Instance.Assignments(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории закреплений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
