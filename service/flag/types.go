package flag

type service struct{}

// Service is the interface for CLI flag parsing.
type Service interface {
	NewCommandFlags(command string) *CommandFlags
}
