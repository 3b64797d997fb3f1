// Package email отправка писем оператору в фоне.
// Ошибки отправки только логируются и никогда не возвращаются вызывающему.
package email

import (
	"bytes"
	"context"
	"payroll-backend/lib/smtp"
	apperrors "payroll-backend/lib/utils/app-errors"
	baseworker "payroll-backend/lib/utils/base-worker"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Message struct {
	Subject string
	Text    string
	// HTML необязателен
	HTML string
	// To пустой список значит адрес оператора
	To []string
}

// Sender синхронная отправка одного письма
type Sender interface {
	Send(msg Message) error
}

type Provider interface {
	// Dispatch ставит письмо в очередь и сразу возвращает управление
	Dispatch(msg Message)
	// Stop дожидается отправки очереди или завершения ctx
	Stop(ctx context.Context)
}

var Instance Provider

func NewHandler(from, operatorAddress string, queueSize, workers int) {
	Instance = NewInstance(NewSmtpSender(from, operatorAddress), queueSize, workers)
}

func NewInstance(sender Sender, queueSize, workers int) Provider {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	i := &impl{
		sender: sender,
		queue:  make(chan Message, queueSize),
		worker: baseworker.NewInstance("email_dispatcher"),
	}
	for n := 0; n < workers; n++ {
		i.wg.Add(1)
		go i.run()
	}
	return i
}

type impl struct {
	sender Sender
	queue  chan Message
	worker *baseworker.BaseImpl
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func (i *impl) Dispatch(msg Message) {
	logger := log.WithField("subject", msg.Subject)
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.closed {
		logger.Warn("отправка писем остановлена, письмо не отправлено")
		return
	}
	select {
	case i.queue <- msg:
	default:
		logger.Warn("очередь писем переполнена, письмо не отправлено")
	}
}

func (i *impl) Stop(ctx context.Context) {
	i.mu.Lock()
	if !i.closed {
		i.closed = true
		close(i.queue)
	}
	i.mu.Unlock()

	done := make(chan struct{})
	go func() {
		i.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		log.Info("очередь писем обработана")
	case <-ctx.Done():
		log.Warn("остановка отправки писем прервана, часть писем не отправлена")
	}
}

func (i *impl) run() {
	defer i.wg.Done()
	for msg := range i.queue {
		i.worker.Protect(func() {
			i.send(msg)
		})
	}
}

func (i *impl) send(msg Message) {
	logger := i.worker.GetLogger().WithField("subject", msg.Subject)
	if err := i.sender.Send(msg); err != nil {
		logger.WithError(apperrors.Dispatch(err, "ошибка отправки письма")).Error("письмо не отправлено")
		return
	}
	logger.Info("письмо отправлено")
}

func NewSmtpSender(from, operatorAddress string) Sender {
	return smtpSender{
		from:            from,
		operatorAddress: operatorAddress,
	}
}

type smtpSender struct {
	from            string
	operatorAddress string
}

func (s smtpSender) Send(msg Message) error {
	if smtp.Instance == nil || !smtp.Instance.IsConfigured() {
		return errors.New("smtp клиент не настроен")
	}
	to := msg.To
	if len(to) == 0 {
		if s.operatorAddress == "" {
			return errors.New("не задан адрес оператора")
		}
		to = []string{s.operatorAddress}
	}
	body, err := BuildMIME(s.from, to, msg)
	if err != nil {
		return err
	}
	return smtp.Instance.SendRaw(s.from, to, body)
}

// BuildMIME multipart письмо, html вариант добавляется если он задан
func BuildMIME(from string, to []string, msg Message) (*bytes.Buffer, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	buf := new(bytes.Buffer)
	if _, err := m.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования письма")
	}
	return buf, nil
}
