package notify

import (
	"fmt"
	"log"

	"iotmarket/pkg/marketplace"
)

// DisputeAlerter emails the marketplace operator when a dispute is raised or
// resolved. Implements marketplace.EventSink; all other event types are
// ignored.
type DisputeAlerter struct {
	email   EmailService
	toEmail string
}

func NewDisputeAlerter(email EmailService, toEmail string) *DisputeAlerter {
	return &DisputeAlerter{email: email, toEmail: toEmail}
}

func (a *DisputeAlerter) Publish(ev marketplace.Event) {
	var subject, body string
	switch ev.Type {
	case marketplace.EventDisputeRaised:
		subject = fmt.Sprintf("Dispute raised on lease %d", ev.LeaseID)
		body = fmt.Sprintf("Identity %s raised a dispute on lease %d (asset %d).", ev.Actor, ev.LeaseID, ev.AssetID)
	case marketplace.EventDisputeResolved:
		subject = fmt.Sprintf("Dispute resolved on lease %d", ev.LeaseID)
		body = fmt.Sprintf("Identity %s resolved the dispute on lease %d (asset %d); refund %d.", ev.Actor, ev.LeaseID, ev.AssetID, ev.Amount)
	default:
		return
	}

	// The send is a synchronous HTTP round-trip; it must happen off the
	// engine's publish path. Delivery failure must not affect the committed
	// operation.
	go func() {
		if err := a.email.SendEmail(subject, a.toEmail, body, "<p>"+body+"</p>"); err != nil {
			log.Printf("dispute alert delivery failed: %v", err)
		}
	}()
}
