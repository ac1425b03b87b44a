package cli

// Exit codes for the c2rust-init CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates that a step failed or the arguments were invalid
	ExitFailure = 1
)
