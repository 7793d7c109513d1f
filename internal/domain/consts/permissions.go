package consts

// Recommended permissions for different types of files and directories vidgrab might create.
const (
	PermsGenericDir = 0o755
	PermsLogFile    = 0o644
)
