package filestorage

import (
	"context"
	"io"
	s3client "payroll-backend/s3"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func NewHandler(bucketName string) {
	if s3client.Client == nil {
		return
	}
	Instance = &impl{
		s3client:   s3client.Client,
		bucketName: bucketName,
	}
}

func (i impl) UploadReceipt(ctx context.Context, employeeID, fileName, contentType string, file io.Reader, fileSize int64) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := NewReceiptKey(employeeID, fileName)
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, file, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла в S3")
	}
	return key, nil
}

func (i impl) GetReceipt(ctx context.Context, key string) ([]byte, string, error) {
	obj, err := i.s3client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения файла из S3")
	}
	defer obj.Close()
	info, err := obj.Stat()
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения файла из S3")
	}
	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка чтения файла из S3")
	}
	return body, info.ContentType, nil
}
