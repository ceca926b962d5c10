package port

// ActionLog records one timestamped line per store action. It only ever
// appends; it never reads or truncates.
type ActionLog interface {
	Record(action string) error
}

// Notifier receives one human-readable message per successful mutation.
// Fire-and-forget: callers never consume a result.
type Notifier interface {
	Notify(message string)
}

// Authenticator gates the interactive session. It has no role in individual
// store operations.
type Authenticator interface {
	Authenticate(username, password string) bool
}
