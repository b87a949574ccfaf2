// Package notify delivers signup one-time codes to users.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/wneessen/go-mail"
)

// Notifier sends a one-time code to an email address. A single attempt is
// made; any error means the code did not go out.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
}

const otpSubject = "Your OTP for signup"

func otpBody(code string) string {
	return "Your one-time password is: " + code + "\r\n"
}

const defaultSMTPTimeout = 10 * time.Second

// SMTPConfig is the relay used by SMTPNotifier.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// Timeout bounds the whole exchange with the relay. Zero means ten seconds.
	Timeout time.Duration
}

// SMTPNotifier sends codes through an SMTP relay with PLAIN auth when a
// user is configured. STARTTLS is used when the relay offers it.
type SMTPNotifier struct {
	cfg    SMTPConfig
	dialer net.Dialer
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSMTPTimeout
	}
	return &SMTPNotifier{cfg: cfg}
}

func (n *SMTPNotifier) SendOTP(ctx context.Context, email, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(email, "\r\n") {
		return fmt.Errorf("invalid recipient %q", email)
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(otpSubject)
	msg.SetBodyString(mail.TypeTextPlain, otpBody(code))

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	opts := []mail.Option{
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(n.cfg.Timeout),
		mail.WithDialContextFunc(n.dialFor(ctx)),
	}
	if n.cfg.Port != 0 {
		opts = append(opts, mail.WithPort(n.cfg.Port))
	}
	if n.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.User),
			mail.WithPassword(n.cfg.Password),
		)
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("smtp send: %w", ctxErr)
		}
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// dialFor returns a dialer whose connections are cut when ctx ends, so a
// relay that stops answering mid-exchange cannot outlive the request.
func (n *SMTPNotifier) dialFor(ctx context.Context) mail.DialContextFunc {
	return func(dialCtx context.Context, network, addr string) (net.Conn, error) {
		conn, err := n.dialer.DialContext(dialCtx, network, addr)
		if err != nil {
			return nil, err
		}
		if deadline, ok := ctx.Deadline(); ok {
			_ = conn.SetDeadline(deadline)
		}
		context.AfterFunc(ctx, func() {
			_ = conn.SetDeadline(time.Now())
		})
		return conn, nil
	}
}

// LogNotifier writes codes to the log instead of mailing them. Development only.
type LogNotifier struct {
	logger logging.Logger
}

func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{logger: l.With("module", "notify")}
}

func (n *LogNotifier) SendOTP(ctx context.Context, email, code string) error {
	n.logger.Warn(ctx, "OTP not mailed, dev OTP logging enabled", "email", email, "otp", code)
	return nil
}

// ErrNoRelay is returned by DisabledNotifier.
var ErrNoRelay = errors.New("no mail relay configured")

// DisabledNotifier refuses every code. It stands in when neither an SMTP
// relay nor dev OTP logging is configured.
type DisabledNotifier struct{}

func (DisabledNotifier) SendOTP(context.Context, string, string) error {
	return ErrNoRelay
}
