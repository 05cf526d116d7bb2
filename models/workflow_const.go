package models

import "strings"

// ApprovalStage этап согласования заявки
type ApprovalStage string

const (
	StageComment  ApprovalStage = "Comment"
	StageReview   ApprovalStage = "Review"
	StageCommit   ApprovalStage = "Commit"
	StageApprove  ApprovalStage = "Approve"
	StageComplete ApprovalStage = "Complete"
)

var stageOrder = map[ApprovalStage]int{
	StageComment:  0,
	StageReview:   1,
	StageCommit:   2,
	StageApprove:  3,
	StageComplete: 4,
}

var stageHumanName = map[ApprovalStage]string{
	StageComment:  "Комментирование",
	StageReview:   "Проверка",
	StageCommit:   "Фиксация",
	StageApprove:  "Утверждение",
	StageComplete: "Завершено",
}

// RouteStages этапы, требующие назначения ответственного на маршруте, в каноническом порядке
func RouteStages() []ApprovalStage {
	return []ApprovalStage{StageComment, StageReview, StageCommit, StageApprove}
}

func (s ApprovalStage) Next() ApprovalStage {
	switch s {
	case StageComment:
		return StageReview
	case StageReview:
		return StageCommit
	case StageCommit:
		return StageApprove
	case StageApprove:
		return StageComplete
	}
	return StageComplete
}

func (s ApprovalStage) Order() int {
	order, exist := stageOrder[s]
	if !exist {
		return -1
	}
	return order
}

func (s ApprovalStage) IsTerminal() bool {
	return s == StageComplete
}

// Equal сравнение без учета регистра
func (s ApprovalStage) Equal(other ApprovalStage) bool {
	return strings.EqualFold(string(s), string(other))
}

func (s ApprovalStage) IsValid() bool {
	_, exist := stageOrder[s]
	return exist
}

func (s ApprovalStage) ToHuman() string {
	if human, exist := stageHumanName[s]; exist {
		return human
	}
	return string(s)
}

// RequestStatus статус заявки
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
	RequestStatusInvalid  RequestStatus = "INVALID"
)

var requestStatusHumanName = map[RequestStatus]string{
	RequestStatusPending:  "На согласовании",
	RequestStatusApproved: "Согласована",
	RequestStatusRejected: "Отклонена",
	RequestStatusInvalid:  "Аннулирована",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := requestStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s RequestStatus) IsTerminal() bool {
	return s != RequestStatusPending
}

// RequestKind тип заявки
type RequestKind string

const (
	KindMaintenance RequestKind = "MAINTENANCE"
	KindAssignment  RequestKind = "ASSIGNMENT"
)

var requestKindHumanName = map[RequestKind]string{
	KindMaintenance: "Заявка на обслуживание ТС",
	KindAssignment:  "Заявка на закрепление ТС",
}

func (k RequestKind) ToHuman() string {
	if human, exist := requestKindHumanName[k]; exist {
		return human
	}
	return string(k)
}

func (k RequestKind) IsValid() bool {
	return k == KindMaintenance || k == KindAssignment
}

// Department подразделение, ключ маршрута согласования
type Department string

const (
	DepartmentAdministration Department = "ADMINISTRATION"
	DepartmentFinance        Department = "FINANCE"
	DepartmentOperations     Department = "OPERATIONS"
	DepartmentMaintenance    Department = "MAINTENANCE"
	DepartmentLogistics      Department = "LOGISTICS"
)

var departmentHumanName = map[Department]string{
	DepartmentAdministration: "Администрация",
	DepartmentFinance:        "Финансовый отдел",
	DepartmentOperations:     "Отдел эксплуатации",
	DepartmentMaintenance:    "Отдел техобслуживания",
	DepartmentLogistics:      "Отдел логистики",
}

func DepartmentList() []Department {
	return []Department{
		DepartmentAdministration,
		DepartmentFinance,
		DepartmentOperations,
		DepartmentMaintenance,
		DepartmentLogistics,
	}
}

func (d Department) IsValid() bool {
	_, exist := departmentHumanName[d]
	return exist
}

func (d Department) ToHuman() string {
	if human, exist := departmentHumanName[d]; exist {
		return human
	}
	return string(d)
}

// WorkflowEventCode код события для уведомлений
type WorkflowEventCode string

const (
	EventActionRequired  WorkflowEventCode = "WF_ACTION_REQUIRED"
	EventStageAdvanced   WorkflowEventCode = "WF_STAGE_ADVANCED"
	EventRequestApproved WorkflowEventCode = "WF_REQUEST_APPROVED"
	EventRequestRejected WorkflowEventCode = "WF_REQUEST_REJECTED"
)

var workflowEventHumanName = map[WorkflowEventCode]string{
	EventActionRequired:  "Требуется ваше действие по заявке",
	EventStageAdvanced:   "Заявка перешла на следующий этап",
	EventRequestApproved: "Заявка согласована",
	EventRequestRejected: "Заявка отклонена",
}

func (c WorkflowEventCode) ToHuman() string {
	if human, exist := workflowEventHumanName[c]; exist {
		return human
	}
	return string(c)
}

// AutoSkipComment комментарий, записываемый при автоматическом пропуске этапа автором заявки
const AutoSkipComment = "Этап пропущен автоматически для автора заявки"
