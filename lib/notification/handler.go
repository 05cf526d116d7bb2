package notification

import (
	"fmt"
	"time"

	"fleet-tools-backend/config"
	"fleet-tools-backend/lib/smtp"
	connectionhub "fleet-tools-backend/lib/ws/hub/connection-hub"
	"fleet-tools-backend/models"
	dbmodels "fleet-tools-backend/models/db"
	wsmodels "fleet-tools-backend/models/ws"

	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	ActionRequired(req dbmodels.WorkflowRequest, assignee dbmodels.User)
	StageAdvanced(req dbmodels.WorkflowRequest, requestor dbmodels.User)
	RequestApproved(req dbmodels.WorkflowRequest, requestor dbmodels.User)
	RequestRejected(req dbmodels.WorkflowRequest, requestor dbmodels.User, comment string)
}

func NewHandler() {
	Instance = &impl{
		from: config.Conf.Smtp.From,
	}
}

type impl struct {
	from string
}

func (i impl) ActionRequired(req dbmodels.WorkflowRequest, assignee dbmodels.User) {
	msg := fmt.Sprintf("Заявка %s ожидает вашего согласования на этапе «%s»", req.ID, req.CurrentStage.ToHuman())
	i.push(assignee, string(models.EventActionRequired), msg, "Требуется согласование")
}

func (i impl) StageAdvanced(req dbmodels.WorkflowRequest, requestor dbmodels.User) {
	msg := fmt.Sprintf("Заявка %s перешла на этап «%s»", req.ID, req.CurrentStage.ToHuman())
	i.push(requestor, string(models.EventStageAdvanced), msg, "Заявка согласуется")
}

func (i impl) RequestApproved(req dbmodels.WorkflowRequest, requestor dbmodels.User) {
	msg := fmt.Sprintf("Заявка %s полностью согласована", req.ID)
	i.push(requestor, string(models.EventRequestApproved), msg, "Заявка согласована")
}

func (i impl) RequestRejected(req dbmodels.WorkflowRequest, requestor dbmodels.User, comment string) {
	msg := fmt.Sprintf("Заявка %s отклонена на этапе «%s». Причина: %s", req.ID, req.CurrentStage.ToHuman(), comment)
	i.push(requestor, string(models.EventRequestRejected), msg, "Заявка отклонена")
}

// push доставляет событие всеми доступными каналами.
// Ошибки доставки не прерывают согласование, только логируются.
func (i impl) push(to dbmodels.User, code, msg, subject string) {
	logger := log.
		WithField("recipient_id", to.ID).
		WithField("event_code", code)
	connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
		ToUserID: to.ID,
		Time:     time.Now().Format(time.RFC3339),
		Code:     code,
		Msg:      msg,
	})
	if to.Email == "" {
		logger.Debug("у получателя не указана почта, письмо не отправлено")
		return
	}
	go func() {
		err := smtp.Instance.SendEMail(i.from, to.Email, msg, subject)
		if err != nil {
			logger.WithError(err).Error("ошибка отправки почтового уведомления")
		}
	}()
}
