package smtp

import (
	"io"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
)

var Instance Provider

type Provider interface {
	// SendRaw отправляет готовое MIME сообщение
	SendRaw(from string, to []string, msg io.Reader) error
	IsConfigured() bool
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) IsConfigured() bool {
	return i.host != "" && i.port != ""
}

func (i impl) SendRaw(from string, to []string, msg io.Reader) (err error) {
	if !i.IsConfigured() {
		return errors.New("smtp клиент не настроен")
	}
	if len(to) == 0 {
		return errors.New("не указаны получатели")
	}
	var auth sasl.Client
	if i.user != "" {
		auth = sasl.NewPlainClient("", i.user, i.password)
	}
	addr := i.host + ":" + i.port
	if i.tlsEnabled {
		err = smtp.SendMailTLS(addr, auth, from, to, msg)
	} else {
		err = smtp.SendMail(addr, auth, from, to, msg)
	}
	if err != nil {
		return errors.Wrap(err, "ошибка отправки сообщения")
	}
	return nil
}
