package apiv1

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"fleet-tools-backend/controllers"
	filestorage "fleet-tools-backend/lib/file-storage"
	workflowhandler "fleet-tools-backend/lib/workflow"
	"fleet-tools-backend/middleware"
	apimodels "fleet-tools-backend/models/api"
	workflowapimodels "fleet-tools-backend/models/api/workflow"
)

type workflowRequestApiController struct {
	controllers.BaseAPIController
}

func InitWorkflowRequestApiRouters(app *fiber.App) {
	controller := workflowRequestApiController{}
	app.Route("request", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("pending", controller.pending)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("status", controller.status)
			idRoute.Get("comments", controller.comments)
			idRoute.Put("process", controller.process)
			idRoute.Put("reject", controller.reject)
			idRoute.Post("attachment", controller.uploadAttachment)
			idRoute.Get("attachment", controller.listAttachments)
		})
	})
	app.Route("attachment/:id", func(router fiber.Router) {
		router.Get("", controller.downloadAttachment)
		router.Delete("", controller.deleteAttachment)
	})
}

// @Summary Подача заявки
// @Tags Заявки
// @Description Подача заявки на обслуживание или закрепление ТС
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workflowapimodels.RequestCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.SubmitResult}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request [post]
func (c *workflowRequestApiController) create(ctx *fiber.Ctx) error {
	var payload workflowapimodels.RequestCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := workflowhandler.Instance.Submit(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подачи заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список
// @Tags Заявки
// @Description Список заявок на согласовании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workflowapimodels.RequestFilter	true	"request filter body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]workflowapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/list [post]
func (c *workflowRequestApiController) list(ctx *fiber.Ctx) error {
	var payload workflowapimodels.RequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := workflowhandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Ожидают действия
// @Tags Заявки
// @Description Заявки, ожидающие действия текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/pending [get]
func (c *workflowRequestApiController) pending(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := workflowhandler.Instance.PendingForUser(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявок, ожидающих действия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение по ИД
// @Tags Заявки
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id} [get]
func (c *workflowRequestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := workflowhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Состояние согласования
// @Tags Заявки
// @Description Этапы, завершенные действия и ожидаемые ответственные
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.WorkflowStatusView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/status [get]
func (c *workflowRequestApiController) status(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := workflowhandler.Instance.WorkflowStatus(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения состояния согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Комментарии
// @Tags Заявки
// @Description Комментарии согласования, сгруппированные по этапам
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.StageComments}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/comments [get]
func (c *workflowRequestApiController) comments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := workflowhandler.Instance.CommentTimeline(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения комментариев")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Согласовать этап
// @Tags Заявки
// @Description Завершение текущего этапа ответственным
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workflowapimodels.ProcessStageData	true	"request body"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.ProcessStageResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/process [put]
func (c *workflowRequestApiController) process(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.ProcessStageData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := workflowhandler.Instance.ProcessStage(ctx.UserContext(), id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования этапа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отклонить
// @Tags Заявки
// @Description Отклонение заявки ответственным текущего этапа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workflowapimodels.RejectData	true	"request body"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.ProcessStageResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/reject [put]
func (c *workflowRequestApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := workflowhandler.Instance.Reject(ctx.UserContext(), id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Загрузка вложения
// @Tags Заявки
// @Description Загрузка файла вложения к заявке
// @Accept  multipart/form-data
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file				formData	file	true	"файл"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/attachment [post]
func (c *workflowRequestApiController) uploadAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("отсутствует файл в запросе"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось открыть файл"))
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл"))
	}
	contentType := fileHeader.Header.Get("Content-Type")
	attachmentID, err := filestorage.Instance.UploadAttachment(ctx.UserContext(), id, fileHeader.Filename, contentType, body)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(attachmentID))
}

// @Summary Список вложений
// @Tags Заявки
// @Description Вложения заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/attachment [get]
func (c *workflowRequestApiController) listAttachments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := filestorage.Instance.ListByRequest(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка вложений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Скачивание вложения
// @Tags Заявки
// @Description Скачивание файла вложения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "attachment ID"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attachment/{id} [get]
func (c *workflowRequestApiController) downloadAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, body, err := filestorage.Instance.GetAttachment(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка скачивания вложения")
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, "attachment; filename=\""+rec.FileName+"\"")
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Удаление вложения
// @Tags Заявки
// @Description Удаление файла вложения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "attachment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attachment/{id} [delete]
func (c *workflowRequestApiController) deleteAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = filestorage.Instance.DeleteAttachment(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
