package alert

import (
	"context"
	"strconv"

	"gopkg.in/gomail.v2"
	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/pkg/config"
)

type SMTPAlerter struct {
	dialer *gomail.Dialer
	from   string
}

func newSMTPAlerter() (alertHandlerInterface, error) {
	smtpConfig := config.GetConfig().SMTP
	port, err := strconv.Atoi(smtpConfig.Port)
	if err != nil {
		return nil, err
	}

	return &SMTPAlerter{
		dialer: gomail.NewDialer(smtpConfig.Host, port, smtpConfig.User, smtpConfig.Password),
		from:   smtpConfig.Notify,
	}, nil
}

func (sa *SMTPAlerter) SendMessageTo(_ context.Context, receiver *model.User, subject, body string) error {
	email := receiver.Attribute.Data().Email
	if email == "" {
		klog.Warningf("%s does not have an email address", receiver.Name)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", sa.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := sa.dialer.DialAndSend(m); err != nil {
		klog.Errorf("Failed to send email to %s: %v", email, err)
		return err
	}

	klog.Infof("Sent email to %s", email)
	return nil
}
