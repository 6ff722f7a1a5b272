package email

import (
	"fmt"
	"time"
)

// RecordChange is the data rendered into the record_changed template.
type RecordChange struct {
	Entity     string
	Action     string
	ID         int
	OccurredAt time.Time
}

// SendRecordChangedEmail tells the site owner a record was created,
// updated or deleted.
func (c *Client) SendRecordChangedEmail(to string, change RecordChange) error {
	subject := fmt.Sprintf("%s #%d %s", change.Entity, change.ID, change.Action)
	return c.SendEmail(to, subject, TemplateRecordChanged, change)
}
