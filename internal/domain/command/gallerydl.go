package command

// General
const (
	GalleryDL          = "gallery-dl"
	Destination        = "-D"
	FilenameFormat     = "-f"
	RateLimit          = "-r"
	Sleep              = "--sleep"
	SleepRequest       = "--sleep-request"
	Retries            = "-R"
	HTTPTimeout        = "--http-timeout"
	CookiesFromBrowser = "--cookies-from-browser"
	CookiesFile        = "-C"
	DownloadArchive    = "--download-archive"
	Range              = "--range"
	FilesizeMin        = "--filesize-min"
	FilesizeMax        = "--filesize-max"
	WriteMetadata      = "--write-metadata"
	Zip                = "--zip"
	NoSkip             = "--no-skip"
	NoMtime            = "--no-mtime"
	UserAgent          = "-a"
	Proxy              = "--proxy"
	Option             = "-o"
	Simulate           = "-s"
)

// Informational
const (
	ListExtractors = "--list-extractors"
	Version        = "--version"
)
