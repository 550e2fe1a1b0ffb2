package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"svault/internal/domain"
)

// Exit codes.
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitAuth       = 2
	ExitFormat     = 3
	ExitNotFound   = 4
	ExitValidation = 5
	ExitIO         = 6
)

var errFmt = color.New(color.FgRed, color.Bold).SprintFunc()

func exitCode(err error) int {
	switch domain.KindOf(err) {
	case domain.KindAuthentication:
		return ExitAuth
	case domain.KindFormat:
		return ExitFormat
	case domain.KindNotFound:
		return ExitNotFound
	case domain.KindValidation:
		return ExitValidation
	case domain.KindIO:
		return ExitIO
	default:
		return ExitGeneral
	}
}

func hint(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		return "check the master password; a damaged file gives the same error"
	case errors.Is(err, domain.ErrExists):
		return "choose another --vault path or remove the existing file"
	case errors.Is(err, domain.ErrUnsupported):
		return "this vault was written by a newer svault"
	case errors.Is(err, domain.ErrAlreadyOpen):
		return "another command in this process holds the vault"
	default:
		return ""
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errFmt("Error:"), err)
	if h := hint(err); h != "" {
		fmt.Fprintf(w, "  hint: %s\n", h)
	}
}
