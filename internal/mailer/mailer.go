package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	config "github.com/maheshrc27/tripnest-api/configs"
	"github.com/maheshrc27/tripnest-api/internal/models"
)

var ErrNotConfigured = errors.New("smtp host is not configured")

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	cfg  config.SMTP
	send sendFunc
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.cfg.Host == "" {
		slog.Warn("mail dropped", "to", msg.To, "error", ErrNotConfigured)
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	if err := m.send(addr, auth, m.cfg.From, []string{msg.To}, m.render(msg)); err != nil {
		return fmt.Errorf("error sending mail to %s: %w", msg.To, err)
	}
	slog.Info("mail sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *SMTPMailer) render(msg Message) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(msg.Body)
	return b.Bytes()
}

// OTPMessage builds the mail carrying a one-time code.
func OTPMessage(to, code, purpose string, ttl time.Duration) Message {
	subject := "TripNest 驗證碼"
	action := "登入"
	if purpose == models.OTPPurposePasswordReset {
		subject = "TripNest 重設密碼驗證碼"
		action = "重設密碼"
	}
	body := fmt.Sprintf("您的%s驗證碼為：%s\r\n\r\n驗證碼將於 %d 分鐘後失效，請勿將驗證碼提供給他人。\r\n",
		action, code, int(ttl.Minutes()))
	return Message{To: to, Subject: subject, Body: body}
}
