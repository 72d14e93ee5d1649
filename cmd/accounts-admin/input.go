package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is swapped out in tests so they never touch a terminal.
//
//nolint:gochecknoglobals // test seam
var readPassword = term.ReadPassword

// readLine prints prompt and returns one trimmed line. A final line without a
// newline is accepted.
func readLine(r *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if prompt != "" {
		if err := write(w, prompt); err != nil {
			return "", err
		}
	}
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo from the controlling terminal.
func promptPassword(w io.Writer) (string, error) {
	if err := write(w, "Password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	if nlErr := writeln(w); nlErr != nil && err == nil {
		err = nlErr
	}
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

// confirm asks a yes/no question and treats anything but y/yes as no.
func confirm(r *bufio.Reader, w io.Writer, question string) error {
	resp, err := readLine(r, w, question+" [y/N]: ")
	if err != nil {
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(resp)
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}
