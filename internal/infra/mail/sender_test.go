package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type captureDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *captureDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestSendBuildsMessage(t *testing.T) {
	d := &captureDialer{}
	s := NewEmailSender("smtp.test", 587, "u", "p", "studio@roe.test").WithDialer(d)

	err := s.Send(context.Background(), entity.EmailMessage{
		ToEmail: "ops@acme.test",
		ToName:  "Acme Co",
		Subject: "Kickoff",
		Message: "See you <Monday>",
	})

	require.NoError(t, err)
	require.Len(t, d.sent, 1)
	m := d.sent[0]
	assert.Equal(t, []string{"Kickoff"}, m.GetHeader("Subject"))
	assert.Equal(t, []string{"studio@roe.test"}, m.GetHeader("From"))

	var raw bytes.Buffer
	_, err = m.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "ops@acme.test")
	assert.Contains(t, raw.String(), "&lt;Monday&gt;")
}

func TestSendWrapsDialError(t *testing.T) {
	s := NewEmailSender("smtp.test", 587, "", "", "a@b.test").WithDialer(&captureDialer{err: errors.New("535 auth failed")})

	err := s.Send(context.Background(), entity.EmailMessage{ToEmail: "x@y.test"})

	assert.ErrorContains(t, err, "535 auth failed")
}
