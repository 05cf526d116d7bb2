package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	attachmentstore "fleet-tools-backend/lib/file-storage/store"
	"fleet-tools-backend/lib/workflow"
	requeststore "fleet-tools-backend/lib/workflow/request-store"
	"fleet-tools-backend/config"
	"fleet-tools-backend/db"
	s3client "fleet-tools-backend/s3"
	workflowapimodels "fleet-tools-backend/models/api/workflow"
	dbmodels "fleet-tools-backend/models/db"
)

var Instance Provider

type Provider interface {
	UploadAttachment(ctx context.Context, requestID, fileName, contentType string, file []byte) (id string, err error)
	GetAttachment(ctx context.Context, attachmentID string) (rec *dbmodels.RequestAttachment, body []byte, err error)
	DeleteAttachment(ctx context.Context, attachmentID string) error
	ListByRequest(requestID string) ([]workflowapimodels.AttachmentView, error)
}

func NewInstance() {
	Instance = &impl{
		s3client:     s3client.Client,
		store:        attachmentstore.NewInstance(db.DB),
		requestStore: requeststore.NewInstance(db.DB),
	}
}

type impl struct {
	s3client     *minio.Client
	store        attachmentstore.Provider
	requestStore requeststore.Provider
}

func (i impl) UploadAttachment(ctx context.Context, requestID, fileName, contentType string, file []byte) (id string, err error) {
	request, err := i.requestStore.GetByID(requestID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения заявки")
	}
	if request == nil {
		return "", errors.Wrap(workflow.ErrNotFound, "заявка не найдена")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectKey := fmt.Sprintf("%s/%s", requestID, uuid.NewString())
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectKey,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения файла в хранилище")
	}
	return i.store.Save(dbmodels.RequestAttachment{
		RequestID:   requestID,
		FileName:    fileName,
		ObjectKey:   objectKey,
		ContentType: contentType,
		FileSize:    int64(len(file)),
	})
}

func (i impl) GetAttachment(ctx context.Context, attachmentID string) (*dbmodels.RequestAttachment, []byte, error) {
	rec, err := i.store.GetByID(attachmentID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения вложения")
	}
	if rec == nil {
		return nil, nil, errors.Wrap(workflow.ErrNotFound, "вложение не найдено")
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return rec, body, nil
}

func (i impl) DeleteAttachment(ctx context.Context, attachmentID string) error {
	rec, err := i.store.GetByID(attachmentID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения вложения")
	}
	if rec == nil {
		return errors.Wrap(workflow.ErrNotFound, "вложение не найдено")
	}
	err = i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из хранилища")
	}
	return i.store.Delete(attachmentID)
}

func (i impl) ListByRequest(requestID string) ([]workflowapimodels.AttachmentView, error) {
	list, err := i.store.ListByRequest(requestID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка вложений")
	}
	result := make([]workflowapimodels.AttachmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, workflowapimodels.AttachmentConvert(rec))
	}
	return result, nil
}
