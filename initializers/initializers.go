package initializers

import (
	"payroll-backend/config"
	"payroll-backend/fiberlog"
	authhandler "payroll-backend/lib/auth"
	"payroll-backend/lib/email"
	expensehandler "payroll-backend/lib/expense"
	xlsexport "payroll-backend/lib/export/xls"
	filestorage "payroll-backend/lib/file-storage"
	notificationhandler "payroll-backend/lib/notification"
	salarysliphandler "payroll-backend/lib/salary-slip"
	usershandler "payroll-backend/lib/users"
	connectionhub "payroll-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices() {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	InitEmail()
	connectionhub.Init()
	filestorage.NewHandler(config.Conf.S3.BucketName)
	xlsexport.NewHandler()
	usershandler.NewHandler()
	authhandler.NewHandler()
	notificationhandler.NewHandler()
	expensehandler.NewHandler()
	salarysliphandler.NewHandler()
	if *config.Conf.Database.SeedOnStart {
		InitSeed()
	}
}

func InitEmail() {
	email.NewHandler(config.Conf.Smtp.From, config.Conf.Email.OperatorAddress,
		config.Conf.Email.QueueSize, config.Conf.Email.Workers)
}
