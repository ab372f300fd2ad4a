// Package notifier delivers account emails over SMTP. Delivery is best
// effort: the service layer decides what a failed send means for the
// operation that triggered it.
package notifier

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"mime"
	"net"
	"net/smtp"
	"time"

	"github.com/shoply-dev/shoply/shared/config"
	"github.com/shoply-dev/shoply/shared/domain"
	"github.com/shoply-dev/shoply/shared/logger"
)

type SMTP struct {
	config *config.Email
	auth   smtp.Auth
}

func New(config *config.Email) *SMTP {
	auth := smtp.PlainAuth("", config.Username, config.Password, config.SMTPServer)
	return &SMTP{
		config: config,
		auth:   auth,
	}
}

// Send delivers one message. Messages carry both a text and an HTML body, so
// they go out as multipart/alternative.
func (e *SMTP) Send(msg domain.EmailMessage) error {
	raw := e.buildMessage(msg)
	address := fmt.Sprintf("%s:%d", e.config.SMTPServer, e.config.SMTPPort)

	// Port 465 = implicit TLS, otherwise STARTTLS
	if e.config.SMTPPort == 465 {
		return e.sendImplicitTLS(address, msg.Recipient, raw)
	}
	return e.sendSTARTTLS(address, msg.Recipient, raw)
}

func (e *SMTP) timeout() time.Duration {
	timeout := time.Duration(e.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return timeout
}

// sendImplicitTLS sends over a connection that is TLS from the start (port 465).
func (e *SMTP) sendImplicitTLS(address, recipient string, msg []byte) error {
	tlsConfig := &tls.Config{ServerName: e.config.SMTPServer}

	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: e.timeout()}, "tcp", address, tlsConfig)
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server (implicit TLS)", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, e.config.SMTPServer)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	return e.sendViaClient(client, recipient, msg)
}

// sendSTARTTLS sends by upgrading a plain connection to TLS (port 587).
func (e *SMTP) sendSTARTTLS(address, recipient string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", address, e.timeout())
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, e.config.SMTPServer)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: e.config.SMTPServer}
	if err = client.StartTLS(tlsConfig); err != nil {
		logger.Log.Error("failed to start TLS", "error", err)
		return err
	}

	return e.sendViaClient(client, recipient, msg)
}

// sendViaClient performs auth, sets sender/recipient and writes the body.
func (e *SMTP) sendViaClient(client *smtp.Client, recipient string, msg []byte) error {
	if err := client.Auth(e.auth); err != nil {
		logger.Log.Error("SMTP authentication failed", "error", err)
		return err
	}

	if err := client.Mail(e.config.Username); err != nil {
		logger.Log.Error("failed to set sender", "error", err)
		return err
	}

	if err := client.Rcpt(recipient); err != nil {
		logger.Log.Error("failed to set recipient", "recipient", recipient, "error", err)
		return err
	}

	w, err := client.Data()
	if err != nil {
		logger.Log.Error("failed to get data writer", "error", err)
		return err
	}

	if _, err = w.Write(msg); err != nil {
		logger.Log.Error("failed to write message", "error", err)
		return err
	}

	if err = w.Close(); err != nil {
		logger.Log.Error("failed to close data writer", "error", err)
		return err
	}

	return client.Quit()
}

func generateMessageID(domain string) string {
	t := time.Now().UnixNano()
	pid := rand.Int63()
	return fmt.Sprintf("<%d.%d@%s>", t, pid, domain)
}

const altBoundary = "shoply-alt-boundary"

func (e *SMTP) buildMessage(msg domain.EmailMessage) []byte {
	encodedSubject := mime.QEncoding.Encode("utf-8", msg.Subject)
	encodedSenderName := mime.QEncoding.Encode("utf-8", e.config.SenderName)

	msgID := generateMessageID(e.config.SMTPServer)
	date := time.Now().Format(time.RFC1123Z)

	return fmt.Appendf(nil,
		"Message-ID: %s\r\n"+
			"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: multipart/alternative; boundary=\"%s\"\r\n"+
			"\r\n"+
			"--%s\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s\r\n"+
			"--%s\r\n"+
			"Content-Type: text/html; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s\r\n"+
			"--%s--\r\n",
		msgID, date, msg.Recipient, encodedSenderName, e.config.Username, encodedSubject,
		altBoundary, altBoundary, msg.TextBody, altBoundary, msg.HTMLBody, altBoundary,
	)
}
