package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
	"github.com/target/mmk-accounts-ui/internal/http/validation"
)

// FormRenderer re-renders a form with its draft and a general notice.
type FormRenderer func(w http.ResponseWriter, r *http.Request, d Draft, notice string)

// FormSubmitOpts contains everything needed to handle one form submission.
type FormSubmitOpts struct {
	W     http.ResponseWriter
	R     *http.Request
	Form  validation.Form
	Draft Draft
	// Submit performs the network operation once the draft is valid.
	Submit func(ctx context.Context) error
	// Fallback is shown when a failed Submit carries no server detail.
	Fallback string
	Render   FormRenderer
	// OnSuccess writes the response after a successful Submit.
	OnSuccess func(w http.ResponseWriter, r *http.Request)
	Now       validation.Clock
	Logger    *slog.Logger
}

// HandleFormSubmit gates submission on a fresh validation pass, runs Submit
// and either re-renders the form with the failure or hands over to OnSuccess.
// Entered values survive every re-render.
func HandleFormSubmit(opts FormSubmitOpts) {
	if opts.Submit == nil || opts.Render == nil || opts.OnSuccess == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}

	d := opts.Draft
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if !d.Validate(opts.Form, now) {
		opts.Render(opts.W, opts.R, d, NoticeFixErrors)
		return
	}

	if err := opts.Submit(opts.R.Context()); err != nil {
		handleFormSubmitError(opts, d, err)
		return
	}
	opts.OnSuccess(opts.W, opts.R)
}

func handleFormSubmitError(opts FormSubmitOpts, d Draft, err error) {
	// Client went away; there is nobody to render for.
	if apperrors.IsCanceled(err) {
		http.Error(opts.W, "request canceled", http.StatusRequestTimeout)
		return
	}

	if opts.Logger != nil {
		opts.Logger.InfoContext(opts.R.Context(), "form submission failed",
			"path", opts.R.URL.Path,
			"error_code", string(apperrors.GetCode(err)),
			"error", err,
		)
	}

	msg := apperrors.UserMessage(err, opts.Fallback)
	if field := apperrors.GetField(err); field != "" && slices.Contains(validation.Fields(opts.Form), field) {
		d.Errors = map[string]string{field: msg}
	}
	opts.Render(opts.W, opts.R, d, msg)
}
