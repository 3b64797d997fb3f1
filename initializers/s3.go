package initializers

import (
	"context"
	"payroll-backend/config"
	s3client "payroll-backend/s3"
	"time"

	log "github.com/sirupsen/logrus"
)

func InitS3() {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 не настроен, загрузка чеков недоступна")
		return
	}
	minioClient, err := s3client.NewClient(config.Conf.S3.Endpoint, config.Conf.S3.AccessKeyID,
		config.Conf.S3.SecretAccessKey, *config.Conf.S3.UseSSL)
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName); err != nil {
		log.WithError(err).
			WithField("bucket", config.Conf.S3.BucketName).
			Error("S3 соединение не удалось, бакет недоступен")
	}

	s3client.Client = minioClient
	log.Info("S3 клиент успешно инициализирован")
}
