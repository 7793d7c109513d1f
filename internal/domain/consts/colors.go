package consts

// Colors
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[92m"
	ColorYellow = "\033[93m"
	ColorCyan   = "\033[96m"
)
