package keys

// Download option flags
const (
	Destination  string = "destination"
	Filename     string = "filename"
	RateLimit    string = "rate-limit"
	Sleep        string = "sleep"
	SleepRequest string = "sleep-request"
	Retries      string = "retries"
	Timeout      string = "timeout"

	CookiesBrowser string = "cookies-browser"
	CookiesFile    string = "cookies-file"

	ArchiveFile string = "archive"
	RangeFilter string = "range"
	FilesizeMin string = "filesize-min"
	FilesizeMax string = "filesize-max"

	WriteMetadata string = "metadata"
	ZipOutput     string = "zip"
	NoSkip        string = "no-skip"
	NoMtime       string = "no-mtime"

	UserAgent   string = "user-agent"
	Proxy       string = "proxy"
	ExtraOption string = "option"
)

// Layer selection
const (
	Profile string = "profile"
	Preset  string = "preset"
)

// Batch execution
const (
	Delay      string = "delay"
	DryRun     string = "dry-run"
	Resume     string = "resume"
	ResumeFile string = "resume-file"
)

// Cookie export
const (
	Browser string = "browser"
	Domain  string = "domain"
	Out     string = "out"
)

// Misc commands
const (
	Filter      string = "filter"
	Limit       string = "limit"
	Description string = "description"
	ListAll     string = "list"
)

// Program settings
const (
	ConfigFile string = "config-file"
	DebugLevel string = "debug-level"
)
