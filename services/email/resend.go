package emailsvc

import (
	"context"
	"encoding/base64"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"

	"github.com/smashclub/backend/core"
)

const resendTimeout = 30 * time.Second

type resendService struct {
	*outbox
	client *resend.Client
	from   string
}

var _ core.EmailService = (*resendService)(nil)

func NewResendService(conf *core.Config, logger core.Logger) core.EmailService {
	from := conf.DefaultFromEmail()
	return &resendService{
		outbox: newOutbox(conf, logger),
		client: resend.NewClient(conf.ResendApiKey),
		from:   from.String(),
	}
}

func (svc *resendService) SendMessages(messages ...*core.EmailMessage) {
	svc.post(messages, svc.deliver)
}

func (svc *resendService) prepare(msg core.EmailMessage) (*resend.SendEmailRequest, error) {
	req := &resend.SendEmailRequest{
		From:    svc.from,
		To:      addresses(msg.To),
		Cc:      addresses(msg.Cc),
		Bcc:     addresses(msg.Bcc),
		Subject: svc.subjPrefix + msg.Subject,
		Text:    msg.TextContent,
		Html:    msg.HTMLContent,
	}
	for _, at := range msg.Attachments {
		// attachments are stored base64 encoded; the client encodes raw bytes itself
		content, err := base64.StdEncoding.DecodeString(at.Content.String())
		if err != nil {
			return nil, errors.Wrapf(err, "decoding attachment %s", at.Filename)
		}
		req.Attachments = append(req.Attachments, &resend.Attachment{Content: content, Filename: at.Filename})
	}
	return req, nil
}

func (svc *resendService) deliver(msg core.EmailMessage) error {
	req, err := svc.prepare(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), resendTimeout)
	defer cancel()
	_, err = svc.client.Emails.SendWithContext(ctx, req)
	return errors.Wrap(err, "resend")
}

func addresses(addrs []mail.Address) []string {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return out
}
