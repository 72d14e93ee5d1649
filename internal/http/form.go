package httpx

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/target/mmk-accounts-ui/internal/http/ui/viewmodel"
	"github.com/target/mmk-accounts-ui/internal/http/validation"
)

// Draft is the in-progress state of a form: raw values plus the current
// per-field errors. An absent error key means the field is valid.
type Draft struct {
	Values map[string]string
	Errors map[string]string
}

// NewDraft returns an empty draft.
func NewDraft() Draft {
	return Draft{Values: map[string]string{}, Errors: map[string]string{}}
}

// draftFromForm collects the fields of form from a parsed request body.
func draftFromForm(r *http.Request, form validation.Form) Draft {
	d := NewDraft()
	for _, field := range validation.Fields(form) {
		d.Values[field] = r.PostFormValue(field)
	}
	return d
}

// Validate runs a fresh pass over every field and records the failures.
// The previous error snapshot is discarded.
func (d *Draft) Validate(form validation.Form, now validation.Clock) bool {
	d.Errors = validation.ValidateAll(form, d.Values, now)
	return len(d.Errors) == 0
}

type fieldSpec struct {
	label        string
	inputType    string
	placeholder  string
	autocomplete string
}

//nolint:gochecknoglobals // static read-only lookup for field chrome
var signupFieldSpecs = map[string]fieldSpec{
	validation.FieldName:        {"Full Name", "text", "Enter your full name", "name"},
	validation.FieldEmail:       {"Email", "email", "Enter your email", "email"},
	validation.FieldDateOfBirth: {"Date of Birth", "date", "", "bday"},
	validation.FieldMobile:      {"Mobile Number", "tel", "Enter 10-digit mobile number", "tel"},
	validation.FieldPassword:    {"Password", "password", "Create a password", "new-password"},
}

//nolint:gochecknoglobals // static read-only lookup for field chrome
var profileFieldSpecs = map[string]fieldSpec{
	validation.FieldName:        {"Name", "text", "", "name"},
	validation.FieldEmail:       {"Email", "email", "", "email"},
	validation.FieldDateOfBirth: {"Date of Birth", "date", "", "bday"},
	validation.FieldMobile:      {"Mobile Number", "tel", "", "tel"},
}

func validateEndpoint(form validation.Form) string {
	if form == validation.SignupForm {
		return pathSignup + "/validate"
	}
	return pathDashboard + "/profile/validate"
}

// buildField renders the view of one field of form from the draft.
func buildField(form validation.Form, field string, d Draft, now validation.Clock) viewmodel.Field {
	specs := profileFieldSpecs
	if form == validation.SignupForm {
		specs = signupFieldSpecs
	}
	spec := specs[field]

	f := viewmodel.Field{
		Name:         field,
		Label:        spec.label,
		Type:         spec.inputType,
		Value:        d.Values[field],
		Error:        d.Errors[field],
		Placeholder:  spec.placeholder,
		Autocomplete: spec.autocomplete,
		Required:     true,
		Endpoint:     validateEndpoint(form) + "?field=" + url.QueryEscape(field),
		Target:       "#field-" + field,
	}

	switch field {
	case validation.FieldPassword:
		// Never echoed back; live validation swaps only the message.
		f.Value = ""
		f.Target = "#error-" + field
	case validation.FieldName, validation.FieldMobile:
		f.Shaped = true
	case validation.FieldDateOfBirth:
		bounds := validation.BirthDateBounds(now)
		f.Min, f.Max = bounds.Min, bounds.Max
	}
	return f
}

// buildFields renders every field of form in display order.
func buildFields(form validation.Form, d Draft, now validation.Clock) []viewmodel.Field {
	fields := validation.Fields(form)
	out := make([]viewmodel.Field, 0, len(fields))
	for _, field := range fields {
		out = append(out, buildField(form, field, d, now))
	}
	return out
}

// validateField serves the live validation endpoint of form: it shapes the
// submitted value against the last accepted one, validates it and returns
// the re-rendered field (or only its message for passwords).
func (h *UIHandlers) validateField(w http.ResponseWriter, r *http.Request, form validation.Form) {
	field := r.URL.Query().Get("field")
	if !slices.Contains(validation.Fields(form), field) {
		http.Error(w, "unknown field", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	now := h.clock()
	value := validation.Shape(form, field, r.PostFormValue("prev_"+field), r.PostFormValue(field))

	d := NewDraft()
	d.Values[field] = value
	if msg := validation.ValidateField(form, field, value, now); msg != "" {
		d.Errors[field] = msg
	}

	view := buildField(form, field, d, now)
	tmpl := "field"
	if field == validation.FieldPassword {
		tmpl = "field-error"
	}
	if err := h.T.RenderFragment(w, tmpl, view); err != nil {
		h.logAndRenderTemplateError(w, r, err, "field fragment render")
	}
}
