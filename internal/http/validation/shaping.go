package validation

import "regexp"

var (
	nameInput         = regexp.MustCompile(`^[A-Za-z\s]*$`)
	mobileInput       = regexp.MustCompile(`^\d*$`)
	signupMobileInput = regexp.MustCompile(`^[6-9]\d*$`)
)

// ShapeName returns next when it is an acceptable partial name (letters and
// spaces, at most 50 characters) and prev otherwise.
func ShapeName(prev, next string) string {
	if len(next) <= 50 && nameInput.MatchString(next) {
		return next
	}
	return prev
}

// ShapeMobile returns next when it is an acceptable partial mobile number
// (digits, at most 10) and prev otherwise. On signup a non-empty number must
// start with 6-9.
func ShapeMobile(prev, next string, signup bool) string {
	if len(next) > 10 {
		return prev
	}
	if next == "" {
		return next
	}
	if signup {
		if signupMobileInput.MatchString(next) {
			return next
		}
		return prev
	}
	if mobileInput.MatchString(next) {
		return next
	}
	return prev
}

// Shape applies the input filter for field; fields without one pass through.
func Shape(form Form, field, prev, next string) string {
	switch field {
	case FieldName:
		return ShapeName(prev, next)
	case FieldMobile:
		return ShapeMobile(prev, next, form == SignupForm)
	}
	return next
}
