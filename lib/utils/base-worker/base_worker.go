package baseworker

import (
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName string
}

func NewInstance(WorkerName string) *BaseImpl {
	return &BaseImpl{
		WorkerName: WorkerName,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	logger := log.
		WithField("worker_name", i.WorkerName)
	return logger
}

// Protect выполняет задание, паника логируется и не валит воркер
func (i BaseImpl) Protect(jobFunc func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	jobFunc()
	return false
}
