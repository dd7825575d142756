package service

import (
	"sync"

	"github.com/matos-01/gestaoDocumentos/internal/mailer"
)

// fakeSender captures outgoing mail for assertions.
type fakeSender struct {
	mu    sync.Mutex
	mails []sentMail
}

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

var _ mailer.Sender = (*fakeSender)(nil)

func (f *fakeSender) SendEmail(to []string, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mails = append(f.mails, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeSender) sent() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.mails...)
}
