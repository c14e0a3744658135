package slot

type Status string

const (
	StatusVacant  Status = "vacant"
	StatusBooked  Status = "booked"
	StatusDeleted Status = "deleted"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusVacant, StatusBooked, StatusDeleted:
		return true
	default:
		return false
	}
}
