package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andri/datasaver/pkg/render"
	"github.com/andri/datasaver/pkg/saver"
)

// payloadOptions are shared by commands that take a payload.
type payloadOptions struct {
	// Stdin reads the payload from standard input
	Stdin bool

	// KeepNewline keeps a trailing newline read from stdin
	KeepNewline bool
}

// readPayload returns the payload from args or, with --stdin, from in.
func readPayload(args []string, in io.Reader, opts payloadOptions) (string, error) {
	switch {
	case opts.Stdin && len(args) > 0:
		return "", errors.New("pass the payload as an argument or with --stdin, not both")
	case opts.Stdin:
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read payload from stdin: %w", err)
		}
		payload := string(data)
		if !opts.KeepNewline {
			payload = strings.TrimSuffix(strings.TrimSuffix(payload, "\n"), "\r")
		}
		return payload, nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", errors.New("a payload argument or --stdin is required")
	}
}

// resolveSaver picks the saver named by saverName, or the one paired with
// format when saverName is empty. With strict set, the saver refuses data
// of any other format.
func resolveSaver(format render.Format, saverName string, strict bool) (saver.Saver, render.Format, error) {
	saverFormat := format
	if saverName != "" {
		f, err := render.ParseFormat(saverName)
		if err != nil {
			return nil, 0, fmt.Errorf("--saver: %w", err)
		}
		saverFormat = f
	}

	s, err := saver.ForFormat(saverFormat)
	if err != nil {
		return nil, 0, err
	}
	if strict {
		s = saver.Strict(saverFormat, s)
	}
	return s, saverFormat, nil
}
