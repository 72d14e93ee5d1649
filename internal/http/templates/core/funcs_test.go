package core

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendlyDate(t *testing.T) {
	assert.Equal(t, "Mar 9, 1990", FriendlyDate("1990-03-09"))
	assert.Equal(t, "not a date", FriendlyDate("not a date"))
	assert.Empty(t, FriendlyDate(""))
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "Admin", RoleLabel(true))
	assert.Equal(t, "User", RoleLabel(false))
}

func TestFieldError(t *testing.T) {
	errs := map[string]string{"email": "Email address is required"}
	assert.Equal(t, "Email address is required", FieldError(errs, "email"))
	assert.Empty(t, FieldError(errs, "name"))
	assert.Empty(t, FieldError(nil, "name"))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "héllo", TruncateText("héllo", 10))
	assert.Equal(t, "hé…", TruncateText("héllo", 3))
	assert.Equal(t, "h", TruncateText("héllo", 1))
	assert.Equal(t, "héllo", TruncateText("héllo", 0))
}

func TestRenderSection(t *testing.T) {
	var tmpl *template.Template
	funcs := Funcs(Deps{
		Template:           &tmpl,
		ContentTemplateFor: func(page string) string { return page + "-content" },
	})
	tmpl = template.Must(template.New("root").Funcs(funcs).Parse(
		`{{define "home-content"}}<p>{{.}}</p>{{end}}{{define "page"}}{{renderSection "home" .}}{{end}}`,
	))

	var sb strings.Builder
	require.NoError(t, tmpl.ExecuteTemplate(&sb, "page", "<hi>"))
	assert.Equal(t, "<p>&lt;hi&gt;</p>", sb.String())
}

func TestRenderSection_Uninitialized(t *testing.T) {
	funcs := Funcs(Deps{ContentTemplateFor: func(string) string { return "" }})
	render, ok := funcs["renderSection"].(func(string, any) (template.HTML, error))
	require.True(t, ok)
	_, err := render("home", nil)
	assert.Error(t, err)
}
