package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	domainErrors "github.com/level12/pyp/internal/errors"
	"github.com/level12/pyp/internal/i18n"
)

var (
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	PackageEmoji = "📦"
	SuccessEmoji = Success.Sprint("✅")
	InfoEmoji    = Info.Sprint("ℹ️")
)

// SmartSpinner wraps a terminal spinner whose message can change while it runs.
type SmartSpinner struct {
	spinner *spinner.Spinner
	w       io.Writer
}

func NewSmartSpinner(w io.Writer, initialMessage string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+PackageEmoji+" "+initialMessage),
		spinner.WithWriter(w),
	)
	return &SmartSpinner{spinner: s, w: w}
}

func (s *SmartSpinner) Start() {
	s.spinner.Start()
}

func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
}

func (s *SmartSpinner) UpdateMessage(msg string) {
	s.spinner.Lock()
	s.spinner.Suffix = " " + PackageEmoji + " " + msg
	s.spinner.Unlock()
}

func (s *SmartSpinner) Success(msg string) {
	s.Stop()
	PrintSuccess(s.w, msg)
}

// WithSpinner runs fn behind a spinner; fn may update the message.
func WithSpinner(w io.Writer, message string, fn func(s *SmartSpinner) error) error {
	s := NewSmartSpinner(w, message)
	s.Start()

	if err := fn(s); err != nil {
		s.Stop()
		return err
	}

	s.Stop()
	return nil
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", InfoEmoji, Info.Sprint(msg))
}

func PrintKeyValue(w io.Writer, key, value string) {
	keyColored := Dim.Sprint(key + ":")
	valueColored := color.New(color.FgWhite, color.Bold).Sprint(value)
	_, _ = fmt.Fprintf(w, "   %s %s\n", keyColored, valueColored)
}

// HandleAppError prints err for a human. AppErrors get their type,
// details, captured command output and suggestion; anything else is
// printed as is.
func HandleAppError(w io.Writer, err error, t *i18n.Translations) {
	if err == nil {
		return
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, err.Error())
		return
	}

	suggestionColor := color.New(color.FgCyan)

	_, _ = fmt.Fprintln(w)
	_, _ = Error.Fprintf(w, "❌ %s: %s\n", appErr.Type, appErr.Message)

	if appErr.Err != nil {
		_, _ = Dim.Fprintf(w, "   %s: %v\n", message(t, "ui_error.details", "Details"), appErr.Err)
	}

	var execErr *domainErrors.ExecError
	if errors.As(err, &execErr) {
		for _, out := range []string{execErr.Stdout, execErr.Stderr} {
			out = strings.TrimRight(out, "\n")
			if out == "" {
				continue
			}
			_, _ = Dim.Fprintf(w, "   %s:\n", message(t, "ui_error.output", "Output"))
			for _, line := range strings.Split(out, "\n") {
				_, _ = fmt.Fprintf(w, "     %s\n", line)
			}
		}
	}

	if appErr.Suggestion != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = suggestionColor.Fprint(w, message(t, "ui_error.try_suggestion", "💡 Try: "))
		for i, line := range strings.Split(appErr.Suggestion, "\n") {
			if i == 0 {
				_, _ = fmt.Fprintln(w, line)
			} else {
				_, _ = fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
	_, _ = fmt.Fprintln(w)
}

func message(t *i18n.Translations, id, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.GetMessage(id, 0, nil)
}
