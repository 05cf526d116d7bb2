package approvalroute

import "github.com/pkg/errors"

var (
	ErrRouteNotFound = errors.New("маршрут не найден")
	ErrDuplicate     = errors.New("маршрут подразделения уже существует")
	ErrRouteInUse    = errors.New("маршрут используется заявками")
)
