package entity

// Profile defaults applied at registration when the client omits them.
const (
	DefaultHeadline = "Hello World!"
	DefaultAvatar   = "/profile.jpeg"
)

// Profile holds the display attributes for a user, one-to-one with User
// by username.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	DOB      string `json:"dob,omitempty"`
	Phone    string `json:"phone"`
	Zipcode  string `json:"zipcode"`
	Headline string `json:"headline"`
	Avatar   string `json:"avatar"`
}

// Summary is the reduced profile view embedded in feed responses.
type Summary struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Headline string `json:"headline"`
}

// Summary returns the feed-sidebar view of the profile.
func (p *Profile) Summary() Summary {
	return Summary{Username: p.Username, Avatar: p.Avatar, Headline: p.Headline}
}
