package repositories

// Notifier receives post-pass messages for institutions whose requests
// were newly fulfilled. Delivery is fire-and-forget; the core consumes no
// return value.
type Notifier interface {
	Notify(institutionID, message string)
}
