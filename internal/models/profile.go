package models

// Profile is a user-named option set, optionally inheriting from another
// profile by name. Inheritance is resolved by the config layer, not here.
type Profile struct {
	Name        string
	Description string
	Extends     string
	Options     DownloadOptions
}
