package filter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/mikey/phish-analyzer/internal/core"
	"github.com/mikey/phish-analyzer/internal/whitelist"
)

// PostfixFilter implements a Postfix content filter. It accepts messages
// over SMTP, runs the analysis, stamps the verdict headers and re-injects
// the message back into Postfix.
type PostfixFilter struct {
	service        *core.AnalyzerService
	parser         *MessageParser
	trusted        *whitelist.Checker
	logger         *zap.Logger
	listenAddr     string
	server         *smtp.Server
	blockHighRisk  bool
	riskHeader     string
	scoreHeader    string
	findingsHeader string
	postfixAddr    string
	postfixPort    int
	postfixEnabled bool
}

// NewPostfixFilter creates a new Postfix content filter
func NewPostfixFilter(
	service *core.AnalyzerService,
	parser *MessageParser,
	trusted *whitelist.Checker,
	logger *zap.Logger,
	listenAddr string,
	blockHighRisk bool,
	riskHeader string,
	scoreHeader string,
	findingsHeader string,
	postfixAddr string,
	postfixPort int,
	postfixEnabled bool,
) *PostfixFilter {
	return &PostfixFilter{
		service:        service,
		parser:         parser,
		trusted:        trusted,
		logger:         logger,
		listenAddr:     listenAddr,
		blockHighRisk:  blockHighRisk,
		riskHeader:     riskHeader,
		scoreHeader:    scoreHeader,
		findingsHeader: findingsHeader,
		postfixAddr:    postfixAddr,
		postfixPort:    postfixPort,
		postfixEnabled: postfixEnabled,
	}
}

// Start starts the Postfix filter service
func (f *PostfixFilter) Start() error {
	f.server = smtp.NewServer(&smtpBackend{filter: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("Postfix filter starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the Postfix filter service
func (f *PostfixFilter) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessEmail analyzes an email directly, bypassing SMTP.
// This is mainly used for testing or direct API calls
func (f *PostfixFilter) ProcessEmail(ctx context.Context, req *core.AnalysisRequest) (*core.AnalysisResponse, error) {
	return f.service.Analyze(ctx, req), nil
}

// sendToPostfix sends the processed email back to Postfix on the configured port using go-smtp
func (f *PostfixFilter) sendToPostfix(sender string, recipients []string, emailData []byte) error {
	postfixAddr := fmt.Sprintf("%s:%d", f.postfixAddr, f.postfixPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", postfixAddr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to Postfix: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
			// Continue with other recipients even if one fails
		} else {
			recipientOK = true
		}
	}

	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}

	_, err = wc.Write(emailData)
	if err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}

	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		f.logger.Warn("QUIT command failed", zap.Error(err))
		// Not returning an error here as the email has already been sent
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	filter *PostfixFilter
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		filter:     b.filter,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	filter     *PostfixFilter
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not needed for our filter)
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data receives the message, analyzes it, stamps the verdict headers and
// forwards the result back to Postfix
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.filter.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	req, err := s.filter.parser.Parse(bytes.NewReader(rawData))
	if err != nil {
		s.filter.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}
	if req.Sender == "" {
		req.Sender = s.sender
	}

	senderDomain := "unknown"
	if parts := strings.Split(req.Sender, "@"); len(parts) == 2 {
		senderDomain = strings.TrimSuffix(parts[1], ">")
	}

	// Trusted senders skip analysis entirely and pass through unmodified
	if s.filter.trusted != nil && s.filter.trusted.IsTrusted(req.Sender) {
		s.filter.logger.Info("Sender trusted, skipping analysis",
			zap.String("from", req.Sender),
			zap.String("sender_domain", senderDomain))
		if s.filter.postfixEnabled {
			return s.filter.sendToPostfix(s.sender, s.recipients, rawData)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := s.filter.service.Analyze(ctx, req)

	if result.OverallRisk == core.RiskHigh && s.filter.blockHighRisk {
		s.filter.logger.Info("Rejecting high-risk email",
			zap.String("from", req.Sender),
			zap.String("sender_domain", senderDomain),
			zap.Int("score", result.Score))
		return fmt.Errorf("550 Rejected as likely phishing (score: %d)", result.Score)
	}

	// Prepend the verdict headers ahead of the original message so the
	// MIME structure and attachments survive untouched
	var modifiedEmail bytes.Buffer
	fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", s.filter.riskHeader, result.OverallRisk)
	fmt.Fprintf(&modifiedEmail, "%s: %d\r\n", s.filter.scoreHeader, result.Score)
	fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", s.filter.findingsHeader, summarizeFindings(result.Findings))
	modifiedEmail.Write(rawData)

	if s.filter.postfixEnabled {
		if err := s.filter.sendToPostfix(s.sender, s.recipients, modifiedEmail.Bytes()); err != nil {
			s.filter.logger.Error("Failed to send email back to Postfix",
				zap.Error(err),
				zap.String("sender", req.Sender))
			return err
		}
	} else {
		// This should never happen in practice as we always want to send back to Postfix
		s.filter.logger.Warn("Postfix forwarding disabled, this is likely a misconfiguration")
	}

	s.filter.logger.Info("Processed email",
		zap.String("from", req.Sender),
		zap.String("sender_domain", senderDomain),
		zap.String("risk", string(result.OverallRisk)),
		zap.Int("score", result.Score),
		zap.Int("findings", len(result.Findings)))

	return nil
}

// Logout handles SMTP logout (not needed for our filter)
func (s *smtpSession) Logout() error {
	return nil
}

// summarizeFindings renders findings as a compact header value,
// e.g. "Urgency Tactics (high); Suspicious Links (medium)".
func summarizeFindings(findings []core.Finding) string {
	if len(findings) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(findings))
	for _, f := range findings {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Category, f.Severity))
	}
	return strings.Join(parts, "; ")
}
