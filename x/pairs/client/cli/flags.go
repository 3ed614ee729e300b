package cli

// Flag constants for pairs CLI commands
const (
	// Address derivation flags
	FlagFactory = "factory"

	// Quote flags
	FlagFee = "fee"

	// TWAP flags
	FlagElapsed = "elapsed"
)
