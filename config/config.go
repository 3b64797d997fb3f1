package config

import (
	"strings"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr     string `default:"" env:"APP_HOST"`
		Port           int    `default:"5001"  env:"APP_PORT"`
		BodyLimitMB    int    `default:"10" env:"APP_BODY_LIMIT_MB"`
		AllowedOrigins string `default:"http://localhost:3000,http://127.0.0.1:3000" env:"ALLOWED_ORIGINS"`
		ErrNotifyAddr  string `default:"" env:"APP_ERR_NOTIFY_ADDR"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"payroll" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
		SeedOnStart    *bool  `default:"true" env:"DB_SEED_ON_START"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"604800" env:"JWT_EXPIRE_IN_SEC"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		From       string `default:"noreply@payrollsystem.com" env:"SMTP_FROM"`
	}
	Email struct {
		OperatorAddress string `default:"" env:"EMAIL_OPERATOR_ADDRESS"`
		QueueSize       int    `default:"100" env:"EMAIL_QUEUE_SIZE"`
		Workers         int    `default:"2" env:"EMAIL_WORKERS"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"payroll-receipts" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Seed struct {
		AdminName        string `default:"Admin User" env:"SEED_ADMIN_NAME"`
		AdminEmail       string `default:"" env:"SEED_ADMIN_EMAIL"`
		AdminPassword    string `default:"" env:"SEED_ADMIN_PASSWORD"`
		EmployeeName     string `default:"" env:"SEED_EMPLOYEE_NAME"`
		EmployeeEmail    string `default:"" env:"SEED_EMPLOYEE_EMAIL"`
		EmployeePassword string `default:"" env:"SEED_EMPLOYEE_PASSWORD"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	// .env не обязателен, переменные окружения могут быть заданы снаружи
	if err := godotenv.Load(); err != nil {
		log.Debug("файл .env не загружен")
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	if err = conf.validate(); err != nil {
		panic(err)
	}
	Conf = conf
}

func (c *Configuration) validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("не задан JWT_SECRET")
	}
	return nil
}
