package booking

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsFinal reports whether no further transition is allowed.
func (s Status) IsFinal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Event topics published through the notification outbox.
const (
	TopicBookingCreated   = "booking.created"
	TopicBookingCompleted = "booking.completed"
	TopicBookingCancelled = "booking.cancelled"
)

func SettledTopic(s Status) string {
	if s == StatusCancelled {
		return TopicBookingCancelled
	}
	return TopicBookingCompleted
}
