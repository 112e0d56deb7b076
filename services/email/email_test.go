package emailsvc

import (
	"bytes"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/services/logger"
	"github.com/smashclub/backend/testutil"
)

func newMessage(t *testing.T) *core.EmailMessage {
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: "Coach Budi", Address: "budi@club.test"}},
		Cc:      []mail.Address{{Address: "owner@club.test"}},
		Subject: "Training report March 2024",
		BodyStr: "see attachment",
	}
	require.NoError(t, msg.Attach(bytes.NewBufferString("Athlete,Sessions\nRina,8/10\n"), "report.csv", "text/csv"))
	return msg
}

func TestNew(t *testing.T) {
	conf := core.NewTestConfig()
	logger := testutil.NewLogger(t, conf)

	tests := []struct {
		provider string
		want     interface{}
	}{
		{provider: "sendgrid", want: &sendgridService{}},
		{provider: "resend", want: &resendService{}},
		{provider: "console", want: &consoleService{}},
		{provider: "", want: &consoleService{}},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			c := *conf
			c.EmailProvider = tt.provider
			assert.IsType(t, tt.want, New(&c, logger))
		})
	}
}

func TestWait(t *testing.T) {
	conf := core.NewTestConfig()
	zl, logs := observer.New(zap.InfoLevel)
	svc := NewConsoleService(conf, logsvc.NewRollbarLogger(zap.New(zl), conf))

	svc.SendMessages(newMessage(t), newMessage(t))
	Wait(svc)

	assert.Equal(t, 2, logs.FilterMessageSnippet("Training report March 2024").Len())
	Wait(NewConsoleServiceMock(conf, testutil.NewLogger(t, conf))) // nothing pending
}

func TestConsoleServiceMock(t *testing.T) {
	conf := core.NewTestConfig()
	svc := NewConsoleServiceMock(conf, testutil.NewLogger(t, conf))

	svc.SendMessages(newMessage(t), &core.EmailMessage{Subject: "no recipient", BodyStr: "x"})

	sent := svc.SentMessages()
	if assert.Len(t, sent, 1) {
		assert.Equal(t, "see attachment", sent[0].TextContent)
		assert.Equal(t, "report.csv", sent[0].Attachments[0].Filename)
	}
	svc.Reset()
	assert.Empty(t, svc.SentMessages())
}

func TestConsoleService_format(t *testing.T) {
	conf := core.NewTestConfig()
	svc := NewConsoleServiceMock(conf, testutil.NewLogger(t, conf))
	msg := newMessage(t)
	require.NoError(t, msg.Render())

	body, err := svc.format(*msg)
	require.NoError(t, err)
	assert.Contains(t, body, "Subject: ["+conf.AppName+"] Training report March 2024\r\n")
	assert.Contains(t, body, "To: \"Coach Budi\" <budi@club.test>\r\n")
	assert.Contains(t, body, "Content-Type: multipart/mixed\r\n")
	assert.Contains(t, body, "attachment; filename=report.csv")
}

func TestResendService_prepare(t *testing.T) {
	conf := core.NewTestConfig()
	svc := NewResendService(conf, testutil.NewLogger(t, conf)).(*resendService)
	msg := newMessage(t)
	require.NoError(t, msg.Render())

	req, err := svc.prepare(*msg)
	require.NoError(t, err)
	assert.Equal(t, []string{`"Coach Budi" <budi@club.test>`}, req.To)
	assert.Equal(t, []string{"<owner@club.test>"}, req.Cc)
	assert.Nil(t, req.Bcc)
	assert.Equal(t, "["+conf.AppName+"] Training report March 2024", req.Subject)
	assert.Equal(t, "see attachment", req.Text)
	if assert.Len(t, req.Attachments, 1) {
		assert.Equal(t, "report.csv", req.Attachments[0].Filename)
		assert.Equal(t, "Athlete,Sessions\nRina,8/10\n", string(req.Attachments[0].Content))
	}
}

func TestSendgridService_sgMail(t *testing.T) {
	conf := core.NewTestConfig()
	svc := NewSendgridService(conf, testutil.NewLogger(t, conf)).(*sendgridService)
	msg := newMessage(t)
	require.NoError(t, msg.Render())

	m := svc.sgMail(*msg)
	if assert.Len(t, m.Personalizations, 1) {
		p := m.Personalizations[0]
		assert.Equal(t, "budi@club.test", p.To[0].Address)
		assert.Equal(t, "owner@club.test", p.CC[0].Address)
	}
	assert.Len(t, m.Content, 1) // no html without a template
	if assert.Len(t, m.Attachments, 1) {
		assert.Equal(t, "text/csv", m.Attachments[0].Type)
	}
}
