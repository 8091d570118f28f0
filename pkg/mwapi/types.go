package mwapi

import "time"

// DeleteResult is what the wiki reports back for a successful deletion.
type DeleteResult struct {
	Title  string `json:"title"  yaml:"title"`
	Reason string `json:"reason" yaml:"reason"`
}

// EditRequest describes a page write.
type EditRequest struct {
	Title   string `json:"title"             yaml:"title"`
	Text    string `json:"text"              yaml:"text"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Minor   bool   `json:"minor,omitempty"   yaml:"minor,omitempty"`
	Bot     bool   `json:"bot,omitempty"     yaml:"bot,omitempty"`
}

// EditResult is what the wiki reports back for a page write.
type EditResult struct {
	Result   string `json:"result"              yaml:"result"`
	Title    string `json:"title"               yaml:"title"`
	NewRevID int64  `json:"newrevid,omitempty"  yaml:"newrevid,omitempty"`
}

// Article is a page's current content plus edit metadata.
type Article struct {
	Title     string    `json:"title"     yaml:"title"`
	Text      string    `json:"text"      yaml:"text"`
	EditedBy  string    `json:"edited_by" yaml:"edited_by"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	RevID     int64     `json:"revid"     yaml:"revid"`
}

// AllPagesOptions narrows an allpages listing. The zero value lists
// everything in the main namespace.
type AllPagesOptions struct {
	// From starts the listing at the given title.
	From string
	// Prefix restricts the listing to titles with the given prefix.
	Prefix string
	// Namespace selects the namespace to list; 0 is the main namespace.
	Namespace int
	// Step overrides how many titles each request asks for.
	Step int
	// RedirectFilter is one of "all", "redirects" or "nonredirects".
	RedirectFilter string
}

// Userinfo describes the logged-in user.
type Userinfo struct {
	ID     int64    `json:"id"     yaml:"id"`
	Name   string   `json:"name"   yaml:"name"`
	Groups []string `json:"groups" yaml:"groups"`
	Rights []string `json:"rights" yaml:"rights"`
}

// HasRight reports whether the user holds the named right.
func (u *Userinfo) HasRight(right string) bool {
	for _, r := range u.Rights {
		if r == right {
			return true
		}
	}

	return false
}

// Siteinfo is the wiki's self-description from meta=siteinfo.
type Siteinfo struct {
	SiteName  string `json:"sitename"  yaml:"sitename"`
	MainPage  string `json:"mainpage"  yaml:"mainpage"`
	Base      string `json:"base"      yaml:"base"`
	Generator string `json:"generator" yaml:"generator"`
	Case      string `json:"case"      yaml:"case"`
}

// Version parses the generator string into a Version.
func (s *Siteinfo) Version() Version {
	return ParseVersion(s.Generator)
}
