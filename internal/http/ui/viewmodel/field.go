package viewmodel

// Field is one labelled form input together with its validation state.
//
// Endpoint and Target wire live validation: the input posts to Endpoint and
// the response replaces the element matched by Target. Shaped fields carry
// their last accepted value in a hidden prev_<name> input so the endpoint can
// refuse keystrokes that break the input filter.
type Field struct {
	Name         string
	Label        string
	Type         string
	Value        string
	Error        string
	Placeholder  string
	Autocomplete string
	Min          string
	Max          string
	Required     bool
	Shaped       bool
	Endpoint     string
	Target       string
}

// Invalid reports whether the field carries an error message.
func (f Field) Invalid() bool { return f.Error != "" }
