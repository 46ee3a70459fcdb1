package filter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jaytaylor/html2text"
	"github.com/jhillyerd/enmime"

	"github.com/mikey/phish-analyzer/internal/core"
	"github.com/mikey/phish-analyzer/internal/utils"
)

// MessageParser turns raw RFC 822 messages into analysis requests.
type MessageParser struct {
	textProcessor *utils.TextProcessor
	maxBodySize   int
}

// NewMessageParser creates a parser that caps and sanitizes extracted text.
func NewMessageParser(textProcessor *utils.TextProcessor, maxBodySize int) *MessageParser {
	return &MessageParser{
		textProcessor: textProcessor,
		maxBodySize:   maxBodySize,
	}
}

// Parse reads a complete raw message and builds the analysis request:
// subject, plain-text body (HTML converted when no text part exists),
// sender, reply-to, attachment filenames and the raw header block.
func (p *MessageParser) Parse(r io.Reader) (*core.AnalysisRequest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	envelope, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIME message: %w", err)
	}

	body := envelope.Text
	if strings.TrimSpace(body) == "" && envelope.HTML != "" {
		if converted, err := html2text.FromString(envelope.HTML, html2text.Options{TextOnly: true}); err == nil {
			body = converted
		} else {
			body = envelope.HTML
		}
	}
	body = p.textProcessor.ProcessText(body, p.maxBodySize)

	attachments := make([]string, 0, len(envelope.Attachments))
	for _, attachment := range envelope.Attachments {
		if attachment.FileName != "" {
			attachments = append(attachments, attachment.FileName)
		}
	}

	return &core.AnalysisRequest{
		Subject:     envelope.GetHeader("Subject"),
		Body:        body,
		Sender:      envelope.GetHeader("From"),
		ReplyTo:     envelope.GetHeader("Reply-To"),
		Attachments: attachments,
		Headers:     rawHeaderBlock(raw),
	}, nil
}

// rawHeaderBlock returns everything before the first blank line.
func rawHeaderBlock(raw []byte) string {
	if idx := bytes.Index(raw, []byte("\r\n\r\n")); idx >= 0 {
		return string(raw[:idx])
	}
	if idx := bytes.Index(raw, []byte("\n\n")); idx >= 0 {
		return string(raw[:idx])
	}
	return ""
}
