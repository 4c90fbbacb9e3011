package email

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/Alijeyrad/angket_backend/config"
)

func TestBuildMessageValidation(t *testing.T) {
	base := Message{To: []string{"a@example.com"}, Subject: "s", TextBody: "b"}

	tests := []struct {
		name   string
		from   string
		mutate func(*Message)
		reason string
	}{
		{"missing from", "", func(*Message) {}, "from is required"},
		{"no recipients", "x@example.com", func(m *Message) { m.To = []string{" "} }, "recipient"},
		{"no subject", "x@example.com", func(m *Message) { m.Subject = "" }, "subject"},
		{"no body", "x@example.com", func(m *Message) { m.TextBody = "" }, "TextBody"},
		{"unnamed attachment", "x@example.com", func(m *Message) {
			m.Attachments = []Attachment{{Data: []byte("x")}}
		}, "attachment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			tt.mutate(&m)
			_, err := buildMessage(tt.from, m)
			var inv ErrInvalidMessage
			require.True(t, errors.As(err, &inv))
			assert.Contains(t, inv.Reason, tt.reason)
		})
	}
}

func TestBuildLedgerExportEmailCarriesWorkbook(t *testing.T) {
	msg := BuildLedgerExportEmail([]string{"guru@example.com"}, LedgerExportData{
		Institution: "SLB Harapan",
		Rows:        3,
		FileName:    "Rekap_Angket_PDBK_2026-10-16.xlsx",
		ContentType: "application/octet-stream",
		Workbook:    []byte("workbook-bytes"),
	})
	assert.Equal(t, "Angket PDBK - rekap 3 peserta didik (SLB Harapan)", msg.Subject)

	gm, err := buildMessage("noreply@example.com", msg)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = gm.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Rekap_Angket_PDBK_2026-10-16.xlsx")
}

func TestSendDisabled(t *testing.T) {
	c, err := NewFromCentral(config.EmailConfig{Enabled: false})
	require.NoError(t, err)
	assert.False(t, c.IsEnabled())
	assert.ErrorAs(t, c.Send(context.Background(), Message{}), &ErrDisabled{})
}

func TestSendUsesTransport(t *testing.T) {
	c, err := New(Config{Enabled: true, From: "noreply@example.com", SMTPTimeoutSeconds: 1})
	require.NoError(t, err)

	var sent int
	c.send = func(m ...*gomail.Message) error {
		sent += len(m)
		return nil
	}
	require.NoError(t, c.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "s", TextBody: "b"}))
	assert.Equal(t, 1, sent)

	c.send = func(...*gomail.Message) error { return errors.New("smtp down") }
	err = c.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "s", TextBody: "b"})
	var se ErrSend
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "gomail/smtp", se.Provider)
}

func TestSendTimesOut(t *testing.T) {
	c, err := New(Config{Enabled: true, From: "noreply@example.com"})
	require.NoError(t, err)
	block := make(chan struct{})
	defer close(block)
	c.send = func(...*gomail.Message) error {
		<-block
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = c.Send(ctx, Message{To: []string{"a@example.com"}, Subject: "s", TextBody: "b"})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
