package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"github.com/ryan-gang/outreach-send/internal/config"
	"github.com/ryan-gang/outreach-send/internal/contacts"
	"github.com/ryan-gang/outreach-send/internal/message"

	gomail "gopkg.in/mail.v2"
)

// Send opens a fresh session, authenticates, delivers msg to one recipient and
// releases the connection on every path.
func (s *SMTPMailSender) Send(ctx context.Context, to contacts.Contact, msg message.Message) error {
	fail := func(kind Kind, err error) error {
		// A socket closed by cancellation surfaces in whatever step was running.
		if ctxErr := ctx.Err(); ctxErr != nil {
			kind = KindConnection
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return &DeliveryError{Kind: kind, Recipient: to.Address, Err: err}
	}

	raw, err := s.build(to, msg)
	if err != nil {
		return fail(KindTransmission, fmt.Errorf("building message: %w", err))
	}

	conn, err := s.dial(ctx)
	if err != nil {
		return fail(KindConnection, err)
	}

	// go-smtp has no context support, so cancellation tears the socket down.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	client, err := s.open(conn)
	if err != nil {
		_ = conn.Close()
		return fail(KindConnection, err)
	}
	defer client.Close()

	auth := sasl.NewPlainClient("", s.cfg.GetSender(), s.cfg.GetPassword())
	if err := client.Auth(auth); err != nil {
		return fail(KindAuthentication, err)
	}

	if err := client.SendMail(s.cfg.GetSender(), []string{to.Address}, bytes.NewReader(raw)); err != nil {
		return fail(KindTransmission, err)
	}

	// The message is already accepted at this point.
	_ = client.Quit()
	return nil
}

// dial connects to the server. In implicit TLS mode the handshake is done
// here as well.
func (s *SMTPMailSender) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(s.cfg.GetServer(), strconv.Itoa(s.cfg.GetPort()))
	dialer := &net.Dialer{Timeout: s.cfg.GetTimeout()}

	if s.cfg.GetSecurity() == config.SecurityTLS {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: s.tlsConfig()}
		conn, err := tlsDialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SMTP tls server %s: %w", addr, err)
		}
		return conn, nil
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server %s: %w", addr, err)
	}
	return conn, nil
}

// open runs the greeting, STARTTLS and EHLO within the session timeout. A
// NOOP forces the TLS handshake so certificate problems are reported here
// rather than by the first AUTH write.
func (s *SMTPMailSender) open(conn net.Conn) (*smtp.Client, error) {
	timeout := s.cfg.GetTimeout()
	var expired atomic.Bool
	stop := func() bool { return true }
	if timeout > 0 {
		// The greeting and STARTTLS run before CommandTimeout can be set.
		watchdog := time.AfterFunc(timeout, func() {
			expired.Store(true)
			_ = conn.Close()
		})
		stop = watchdog.Stop
	}

	client, err := s.newClient(conn)
	if err == nil {
		if timeout > 0 {
			client.CommandTimeout = timeout
			client.SubmissionTimeout = timeout
		}
		err = client.Noop()
	}
	if !stop() && err == nil {
		err = errors.New("watchdog closed the connection")
	}
	if err != nil {
		if expired.Load() {
			err = fmt.Errorf("no response within %s: %w", timeout, err)
		}
		return nil, fmt.Errorf("failed to open SMTP session with %s: %w", s.cfg.GetServer(), err)
	}
	return client, nil
}

func (s *SMTPMailSender) newClient(conn net.Conn) (*smtp.Client, error) {
	if s.cfg.GetSecurity() == config.SecurityTLS {
		return smtp.NewClient(conn), nil
	}
	return smtp.NewClientStartTLS(conn, s.tlsConfig())
}

func (s *SMTPMailSender) tlsConfig() *tls.Config {
	return &tls.Config{ServerName: s.cfg.GetServer(), RootCAs: s.rootCAs}
}

func (s *SMTPMailSender) build(to contacts.Contact, msg message.Message) ([]byte, error) {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.GetSender(), s.cfg.GetSenderName())
	m.SetHeader("To", to.Address)
	m.SetHeader("Subject", msg.Subject)
	m.SetDateHeader("Date", time.Now())
	m.SetHeader("Message-ID", messageID(s.cfg.GetSender()))
	m.SetBody("text/plain", msg.Body)

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func messageID(sender string) string {
	domain := "localhost"
	if at := strings.LastIndex(sender, "@"); at >= 0 && at < len(sender)-1 {
		domain = sender[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
