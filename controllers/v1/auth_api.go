package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"fleet-tools-backend/controllers"
	usershandler "fleet-tools-backend/lib/users"
	apimodels "fleet-tools-backend/models/api"
	usersapimodels "fleet-tools-backend/models/api/users"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
	})
}

// @Summary Вход
// @Tags Авторизация
// @Description Вход по почте и паролю
// @Param	body body	 usersapimodels.LoginData	true	"request body"
// @Success 200 {object} apimodels.Response{data=usersapimodels.LoginResult}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload usersapimodels.LoginData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := usershandler.Instance.Login(payload)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
