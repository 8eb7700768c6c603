package recstate

import "time"

// Notification display timings, measured from Show.
const (
	NotifyFadeDelay  = 2500 * time.Millisecond
	NotifyClearDelay = 3000 * time.Millisecond
)

// Notification is a transient user feedback message.
type Notification struct {
	Message   string
	CreatedAt time.Time
}

// Notifier is a single-slot notification queue. Each Show supersedes the
// previous message and invalidates its pending fade/clear transitions via a
// sequence number, so a stale timer can never touch a newer message.
type Notifier struct {
	seq     int
	current *Notification
	fading  bool
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Show replaces the current message and returns the sequence number the
// caller must present with the deferred Fade and Clear calls.
func (n *Notifier) Show(message string) int {
	n.seq++
	n.current = &Notification{Message: message, CreatedAt: time.Now()}
	n.fading = false
	return n.seq
}

// Fade begins the fade-out for the message identified by seq. Stale
// sequence numbers are ignored and false is returned.
func (n *Notifier) Fade(seq int) bool {
	if seq != n.seq || n.current == nil {
		return false
	}
	n.fading = true
	return true
}

// Clear removes the message identified by seq. Stale sequence numbers are
// ignored and false is returned.
func (n *Notifier) Clear(seq int) bool {
	if seq != n.seq || n.current == nil {
		return false
	}
	n.current = nil
	n.fading = false
	return true
}

// Current returns the displayed notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Fading reports whether the current message has begun fading out.
func (n *Notifier) Fading() bool {
	return n.current != nil && n.fading
}
