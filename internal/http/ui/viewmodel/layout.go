package viewmodel

// User represents the signed-in account as exposed to the page chrome.
type User struct {
	Name    string
	Email   string
	IsAdmin bool
}

// Notice kinds.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a one-line banner shown above the page content.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// IsError reports whether the notice reports a failure.
func (n *Notice) IsError() bool { return n != nil && n.Kind == NoticeError }

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	IsAdmin         bool
	User            *User
	Notice          *Notice
}
