package order

// Queue names for order lifecycle events. Consumers are external
// collaborators; the message payload is the full order JSON (id, userID,
// products, totalAmount, status, createdAt as RFC3339) and delivery is
// at-least-once.
const (
	QueueCreated   = "order_created"
	QueueProcessed = "order_processed"
)
