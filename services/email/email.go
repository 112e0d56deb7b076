package emailsvc

import (
	"fmt"
	"sync"

	"github.com/smashclub/backend/core"
)

// New returns the email service of the configured provider. Unknown providers print to the console.
func New(conf *core.Config, logger core.Logger) core.EmailService {
	switch conf.EmailProvider {
	case "sendgrid":
		return NewSendgridService(conf, logger)
	case "resend":
		return NewResendService(conf, logger)
	default:
		return NewConsoleService(conf, logger)
	}
}

// outbox renders messages and hands the deliverable ones to a provider in the background.
type outbox struct {
	subjPrefix string
	logger     core.Logger
	wg         sync.WaitGroup
}

func newOutbox(conf *core.Config, logger core.Logger) *outbox {
	return &outbox{subjPrefix: "[" + conf.AppName + "] ", logger: logger}
}

// deliverable renders msg and reports whether it has recipients and something to send.
func (ob *outbox) deliverable(msg *core.EmailMessage) bool {
	if err := msg.Render(); err != nil {
		ob.logger.Error(fmt.Sprintf("rendering email %q: %v", msg.Subject, err), err)
		return false
	}
	return msg.HasRecipients() && (msg.HasContent() || msg.HasAttachments())
}

func (ob *outbox) post(messages []*core.EmailMessage, deliver func(core.EmailMessage) error) {
	for _, msg := range messages {
		ob.wg.Add(1)
		go func() {
			defer ob.wg.Done()
			if !ob.deliverable(msg) {
				return
			}
			if err := deliver(*msg); err != nil {
				ob.logger.Error(fmt.Sprintf("sending email %q: %v", msg.Subject, err), err)
			}
		}()
	}
}

// Wait blocks until the messages posted so far are delivered or dropped.
func (ob *outbox) Wait() {
	ob.wg.Wait()
}

// Wait blocks until svc is done with the messages it was given, when svc sends in the background.
func Wait(svc core.EmailService) {
	if w, ok := svc.(interface{ Wait() }); ok {
		w.Wait()
	}
}
