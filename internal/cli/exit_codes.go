package cli

// Exit codes for the chlog CLI. Check runs are meant for CI and hooks, so
// the codes stay stable for scripting.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitFailure indicates an invalid commit, template or argument.
	ExitFailure = 1
)
