package consts

// Program
const (
	AppName = "mash"
	Version = "0.3.0"
)

// Files and directories
const (
	ConfigFileName  = "config.toml"
	DBFileName      = "mash.db"
	ArchiveFileName = "archive.txt"
	ResumeFileName  = "resume.json"
)

// ValidBrowsers are the browser names gallery-dl accepts for
// --cookies-from-browser. Entries may carry a keyring/profile suffix
// ("chrome/Default"), only the part before the slash is checked.
var ValidBrowsers = []string{
	"brave", "chrome", "chromium", "edge", "firefox", "opera", "safari",
}

// Database
const (
	DBHistory = "history"

	QHistID        = "id"
	QHistURL       = "url"
	QHistPreset    = "preset"
	QHistProfile   = "profile"
	QHistSuccess   = "success"
	QHistError     = "error_msg"
	QHistCreatedAt = "created_at"
)
