package services

import (
	"fmt"

	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
)

// StatusObserver watches one task hierarchy and notifies a recipient when the
// derived status changes between checks. It sits on top of the aggregator;
// the aggregator itself knows nothing about notification channels.
type StatusObserver struct {
	component TaskComponent
	notifier  Notifier
	recipient string
	lastSeen  models.TaskStatus
}

func NewStatusObserver(component TaskComponent, notifier Notifier, recipient string) *StatusObserver {
	return &StatusObserver{
		component: component,
		notifier:  notifier,
		recipient: recipient,
		lastSeen:  component.GetStatus(),
	}
}

// Check re-derives the status and sends a notification if it moved since the
// last check. The send error is returned so callers can log it; the observer
// still records the new status, so a failed send is not re-delivered.
func (o *StatusObserver) Check() error {
	current := o.component.GetStatus()
	if current == o.lastSeen {
		return nil
	}
	previous := o.lastSeen
	o.lastSeen = current
	msg := fmt.Sprintf("task %d moved from %s to %s", o.component.ID(), previous, current)
	return o.notifier.Send(msg, o.recipient)
}
