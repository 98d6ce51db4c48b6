package emailfiles

import (
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"

	_ "github.com/emersion/go-message/charset" // decode non-UTF-8 headers
)

// EMLPreview carries the headers shown in the dashboard table for an
// uploaded .eml file.
type EMLPreview struct {
	Subject string     `json:"subject,omitempty"`
	From    string     `json:"from,omitempty"`
	To      string     `json:"to,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
}

// ParseEMLPreview extracts display headers from an RFC 822 message stream.
// Header fields that fail to parse are left empty rather than failing the
// whole preview.
func ParseEMLPreview(r io.Reader) (EMLPreview, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return EMLPreview{}, err
	}

	var p EMLPreview
	if subject, err := mr.Header.Subject(); err == nil {
		p.Subject = subject
	}
	if addrs, err := mr.Header.AddressList("From"); err == nil {
		p.From = formatAddresses(addrs)
	}
	if addrs, err := mr.Header.AddressList("To"); err == nil {
		p.To = formatAddresses(addrs)
	}
	if date, err := mr.Header.Date(); err == nil && !date.IsZero() {
		utc := date.UTC()
		p.Date = &utc
	}
	return p, nil
}

func formatAddresses(addrs []*mail.Address) string {
	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a == nil {
			continue
		}
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ", ")
}
