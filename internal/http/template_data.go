package httpx

import (
	"net/http"

	"github.com/target/mmk-accounts-ui/internal/http/ui/viewmodel"
)

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta)}
}

// WithError replaces any pending notice with an error notice.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	return b.WithNotice(viewmodel.NoticeError, msg)
}

// WithNotice sets the page notice. Empty messages are ignored.
func (b *TemplateDataBuilder) WithNotice(kind, msg string) *TemplateDataBuilder {
	if msg == "" {
		return b
	}
	b.data["Notice"] = &viewmodel.Notice{Kind: kind, Message: msg}
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
