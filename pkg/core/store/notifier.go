package store

// Notifier is how the store surfaces operation outcomes to the user. The
// CLI installs a console implementation; tests install a recorder.
type Notifier interface {
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Warning(string) {}
func (NopNotifier) Error(string)   {}
