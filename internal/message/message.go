package message

import (
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
)

const (
	Subject           = "Collaboration Opportunity"
	DefaultSenderName = "Ege Ercin"
)

// %[1]s is the organization name, %[2]s the sender name.
var bodyTemplate = strings.TrimLeft(dedent.Dedent(`
	Dear %[1]s Team,

	I hope this message finds you well.

	I have been following the work your organization has been doing and I
	would love to explore how we could collaborate. I believe there is a
	real opportunity for us to support %[1]s in reaching its goals, and I
	would welcome the chance to discuss it in a short call at your
	convenience.

	Please let me know a time that works for you, or simply reply to this
	email with any questions.

	Best regards,
	%[2]s
`), "\n")

// Message is a rendered outreach email
type Message struct {
	Subject string
	Body    string
}

// Compose renders the outreach email for one organization
func Compose(orgName, senderName string) Message {
	if senderName == "" {
		senderName = DefaultSenderName
	}
	return Message{
		Subject: Subject,
		Body:    fmt.Sprintf(bodyTemplate, orgName, senderName),
	}
}
