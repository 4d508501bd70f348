package messaging

// SalesStream is the JetStream stream that captures sale events.
const SalesStream = "SALES"

const (
	SalesSubjects        = "sales.>"
	SalesRecordedSubject = "sales.recorded"
)
