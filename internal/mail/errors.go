package mail

import "fmt"

// Kind is the stage of a delivery attempt that failed
type Kind int

const (
	// KindConnection covers dialing and the TLS upgrade.
	KindConnection Kind = iota + 1
	// KindAuthentication covers SMTP AUTH.
	KindAuthentication
	// KindTransmission covers building the message and MAIL/RCPT/DATA.
	KindTransmission
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindAuthentication:
		return "authentication"
	case KindTransmission:
		return "transmission"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DeliveryError reports a failed send to a single recipient
type DeliveryError struct {
	Kind      Kind
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s failure sending to %s: %v", e.Kind, e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
