package queue

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeNotifier struct {
	assignedTo  string
	cancelledTo string
	reason      string
	err         error
}

func (f *fakeNotifier) NotifyLeadAssigned(to, agentName, leadName string) error {
	f.assignedTo = to
	return f.err
}

func (f *fakeNotifier) NotifyLeadCancelled(to, leadName, reason string) error {
	f.cancelledTo = to
	f.reason = reason
	return f.err
}

func newTestWorker(n *fakeNotifier) *Worker {
	return NewWorker(nil, n, "ops@propline.io", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestWorkerRoutesAssignedEvents(t *testing.T) {
	notifier := &fakeNotifier{}
	w := newTestWorker(notifier)

	err := w.process(LeadEvent{
		Event:      EventLeadAssigned,
		LeadID:     1,
		LeadName:   "John Doe",
		AgentEmail: "ana@propline.io",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ana@propline.io", notifier.assignedTo)
}

func TestWorkerRoutesCancelledEventsToOps(t *testing.T) {
	notifier := &fakeNotifier{}
	w := newTestWorker(notifier)

	err := w.process(LeadEvent{
		Event:    EventLeadCancelled,
		LeadID:   1,
		LeadName: "John Doe",
		Reason:   "buyer backed out",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ops@propline.io", notifier.cancelledTo)
	assert.Equal(t, "buyer backed out", notifier.reason)
}

func TestWorkerDropsUnknownEvents(t *testing.T) {
	notifier := &fakeNotifier{}
	w := newTestWorker(notifier)

	err := w.process(LeadEvent{Event: "lead.sneezed"})

	assert.NoError(t, err)
	assert.Empty(t, notifier.assignedTo)
	assert.Empty(t, notifier.cancelledTo)
}

func TestWorkerPropagatesNotifierFailure(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	w := newTestWorker(notifier)

	err := w.process(LeadEvent{Event: EventLeadAssigned})

	assert.Error(t, err)
}
