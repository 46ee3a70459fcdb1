package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSnapshot(t *testing.T) {
	req := &AnalysisRequest{
		Subject: "Invoice Overdue",
		Body:    "Pay at http://billing.example.com/pay before Friday",
		Sender:  `"Billing" <billing@Example.com>`,
		ReplyTo: "reply@elsewhere.net",
		URLs:    []string{"https://tracker.example.org/t"},
	}

	snap := NewSnapshot(req)

	assert.Equal(t, "invoice overdue\npay at http://billing.example.com/pay before friday", snap.LoweredText)
	assert.Equal(t, "billing@example.com", snap.Sender)
	assert.Equal(t, "example.com", snap.SenderDomain)
	assert.Equal(t, "elsewhere.net", snap.ReplyToDomain)
	assert.Equal(t, []string{"https://tracker.example.org/t", "http://billing.example.com/pay"}, snap.URLs)
	assert.Equal(t, []string{"example.org", "example.com"}, snap.URLDomains)
}

func TestNewSnapshotMalformedSender(t *testing.T) {
	snap := NewSnapshot(&AnalysisRequest{Body: "hello", Sender: "not-an-address"})

	assert.Equal(t, "", snap.Sender)
	assert.Equal(t, "", snap.SenderDomain)
}

func TestUniqueURLDomains(t *testing.T) {
	snap := &Snapshot{
		URLDomains: []string{"zeta.com", "alpha.com", "", "zeta.com"},
	}

	assert.Equal(t, []string{"alpha.com", "zeta.com"}, snap.UniqueURLDomains())
}
