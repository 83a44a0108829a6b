package domain

import "fmt"

// Notification is a plaintext email to a submitter.
type Notification struct {
	To       string
	FullName string
	Subject  string
	Body     string
}

const acceptTemplate = `Dear %[1]s,

Congratulations! We are pleased to inform you that your %[2]s, "%[3]s", has been approved for the TRISTEP platform. Your contribution aligns well with our content standards, and we believe it will be a valuable addition to our offerings.

Thank you for your contribution to our learning community. We look forward to seeing it engage and educate our users.

Best regards,
TRISTEP Admin
`

const rejectTemplate = `Dear %[1]s,

Thank you for submitting your %[2]s, "%[3]s", for consideration on the TRISTEP platform. After a thorough review, we regret to inform you that it does not fully align with our current content standards, and we cannot proceed with its approval at this time.

We highly value the effort you've put in and encourage you to make the necessary adjustments. Should you choose to revise and resubmit, please ensure it aligns with our platform's standards.

Thank you for your understanding.

Best regards,
TRISTEP Admin
`

// NewReviewNotification renders the Accept or Reject email for a submission.
func NewReviewNotification(kind CorpusKind, contact Contact, status ReviewStatus) (Notification, error) {
	var tmpl string
	switch status {
	case StatusAccepted:
		tmpl = acceptTemplate
	case StatusRejected:
		tmpl = rejectTemplate
	default:
		return Notification{}, fmt.Errorf("%w: no template for %q", ErrInvalidStatus, status)
	}

	entity := kind.EntityType()
	return Notification{
		To:       contact.Email,
		FullName: contact.FullName,
		Subject:  fmt.Sprintf("Verification Result of %s \"%s\" for TriStep Platform", entity, contact.Title),
		Body:     fmt.Sprintf(tmpl, contact.FullName, entity, contact.Title),
	}, nil
}
