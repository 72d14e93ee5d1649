package httpx

// CurrentPage constants identify pages for templates and navigation.
const (
	PageLogin     = "login"
	PageSignup    = "signup"
	PageDashboard = "dashboard"
	PageUsers     = "users"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Notices shown after form submissions and navigation.
const (
	NoticeFixErrors      = "Please fix all the errors in the form"
	NoticeSignupOK       = "Signup successful!"
	NoticeSignupFailed   = "Signup failed"
	NoticeLoginFailed    = "Login failed"
	NoticeProfileOK      = "Profile updated successfully!"
	NoticeProfileFailed  = "Failed to update profile"
	NoticeLoggedOut      = "Logged out successfully!"
	NoticeUsersFailed    = "Failed to fetch users"
	NoticeSessionExpired = "Please log in to continue"
)

// Paths the handlers redirect between.
const (
	pathLogin     = "/login"
	pathSignup    = "/signup"
	pathDashboard = "/dashboard"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLogin:     "login-content",
	PageSignup:    "signup-content",
	PageDashboard: "dashboard-content",
	PageUsers:     "users-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
