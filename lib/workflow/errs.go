package workflow

import "github.com/pkg/errors"

// Ошибки согласования, различимые на уровне API:
// "не найдено" / "не ваш этап" / "уже обработано" / "недопустимое состояние"
var (
	ErrNotFound     = errors.New("запись не найдена")
	ErrForbidden    = errors.New("пользователь не отвечает за текущий этап")
	ErrConflict     = errors.New("этап уже обработан этим пользователем")
	ErrInvalidState = errors.New("операция недопустима в текущем состоянии заявки")
)
