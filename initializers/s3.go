package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	s3client "fleet-tools-backend/s3"
)

func InitS3() {
	err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	// Проверка соединения
	_, err = s3client.Client.ListBuckets(context.Background())
	if err != nil {
		log.WithError(err).Error("Ошибка проверки соединения с S3")
		return
	}

	err = s3client.MakeBucket(context.Background())
	if err != nil {
		log.WithError(err).Error("Ошибка создания бакета")
		return
	}
	log.Info("S3 клиент успешно инициализирован")
}
