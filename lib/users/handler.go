package users

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	usersstore "fleet-tools-backend/lib/users/store"
	authutils "fleet-tools-backend/lib/utils/auth-utils"
	"fleet-tools-backend/db"
	"fleet-tools-backend/models"
	usersapimodels "fleet-tools-backend/models/api/users"
	dbmodels "fleet-tools-backend/models/db"
)

var Instance Provider

type Provider interface {
	Login(data usersapimodels.LoginData) (*usersapimodels.LoginResult, error)
	Create(data usersapimodels.UserCreateData) (id string, err error)
	Update(userID string, data usersapimodels.UserUpdateData) error
	Delete(userID string) error
	GetByID(userID string) (*usersapimodels.UserView, error)
	List(page, limit int) ([]usersapimodels.UserView, error)
	ListByDepartment(department models.Department) ([]usersapimodels.UserView, error)
}

func NewHandler() {
	Instance = &impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Login(data usersapimodels.LoginData) (*usersapimodels.LoginResult, error) {
	logger := log.WithField("email", data.Email)
	err := data.Validate()
	if err != nil {
		return nil, err
	}
	user, err := i.store.FindByEmail(data.Email)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка поиска пользователя по почте")
		return nil, err
	}
	if user == nil {
		logger.Debug("пользователь с такой почтой не найден")
		return nil, errors.New("пользователь с такой почтой не найден")
	}
	if !user.IsActive {
		logger.Debug("пользователь деактивирован")
		return nil, errors.New("пользователь деактивирован")
	}
	if authutils.GetMD5Hash(data.Password) != user.Password {
		logger.Debug("пользователь не прошел проверку пароля")
		return nil, errors.New("пользователь не прошел проверку пароля")
	}
	token, err := authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return nil, err
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		logger.WithError(err).Error("ошибка генерации refresh JWT")
		return nil, err
	}
	err = i.store.Update(user.ID, map[string]interface{}{"last_login": time.Now()})
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка обновления даты последнего входа")
	}
	return &usersapimodels.LoginResult{
		AccessToken:  token,
		RefreshToken: refreshToken,
	}, nil
}

func (i impl) Create(data usersapimodels.UserCreateData) (id string, err error) {
	err = data.Validate()
	if err != nil {
		return "", err
	}
	existing, err := i.store.FindByEmail(data.Email)
	if err != nil {
		return "", errors.Wrap(err, "ошибка проверки почты")
	}
	if existing != nil {
		return "", errors.New("пользователь с такой почтой уже существует")
	}
	return i.store.Create(dbmodels.User{
		Password:    authutils.GetMD5Hash(data.Password),
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Email:       data.Email,
		IsActive:    true,
		PhoneNumber: data.PhoneNumber,
		Department:  data.Department,
		Role:        data.Role,
	})
}

func (i impl) Update(userID string, data usersapimodels.UserUpdateData) error {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения пользователя")
	}
	if rec == nil {
		return errors.New("пользователь не найден")
	}
	updMap := map[string]interface{}{}
	if data.FirstName != nil {
		updMap["first_name"] = *data.FirstName
	}
	if data.LastName != nil {
		updMap["last_name"] = *data.LastName
	}
	if data.PhoneNumber != nil {
		updMap["phone_number"] = *data.PhoneNumber
	}
	if data.Department != nil {
		if !data.Department.IsValid() {
			return errors.Errorf("неизвестное подразделение: %v", *data.Department)
		}
		updMap["department"] = *data.Department
	}
	if data.Role != nil {
		if !data.Role.IsValid() {
			return errors.Errorf("неизвестная роль: %v", *data.Role)
		}
		updMap["role"] = *data.Role
	}
	if data.IsActive != nil {
		updMap["is_active"] = *data.IsActive
	}
	if data.Password != nil {
		updMap["password"] = authutils.GetMD5Hash(*data.Password)
	}
	return i.store.Update(userID, updMap)
}

func (i impl) Delete(userID string) error {
	return i.store.Delete(userID)
}

func (i impl) GetByID(userID string) (*usersapimodels.UserView, error) {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пользователя")
	}
	if rec == nil {
		return nil, errors.New("пользователь не найден")
	}
	view := usersapimodels.UserConvert(*rec)
	return &view, nil
}

func (i impl) List(page, limit int) ([]usersapimodels.UserView, error) {
	list, err := i.store.List(page, limit)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка пользователей")
	}
	result := make([]usersapimodels.UserView, 0, len(list))
	for _, rec := range list {
		result = append(result, usersapimodels.UserConvert(rec))
	}
	return result, nil
}

func (i impl) ListByDepartment(department models.Department) ([]usersapimodels.UserView, error) {
	if !department.IsValid() {
		return nil, errors.Errorf("неизвестное подразделение: %v", department)
	}
	list, err := i.store.ListByDepartment(department)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка пользователей подразделения")
	}
	result := make([]usersapimodels.UserView, 0, len(list))
	for _, rec := range list {
		result = append(result, usersapimodels.UserConvert(rec))
	}
	return result, nil
}
