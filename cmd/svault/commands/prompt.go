package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"svault/internal/domain"
)

// readSecret prompts on stderr and reads one line without echo when stdin is
// a terminal. Piped input is read line by line.
func (c *cli) readSecret(prompt string) ([]byte, error) {
	fmt.Fprint(c.errOut, prompt)
	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.errOut)
		if err != nil {
			return nil, domain.E(domain.KindIO, "read password", err)
		}
		return b, nil
	}
	if c.lines == nil {
		c.lines = bufio.NewReader(c.in)
	}
	line, err := c.lines.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return nil, domain.E(domain.KindIO, "read password", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// newSecret asks for a secret twice and requires both to match.
func (c *cli) newSecret(prompt string) ([]byte, error) {
	a, err := c.readSecret(prompt)
	if err != nil {
		return nil, err
	}
	b, err := c.readSecret("Repeat: ")
	if err != nil {
		return nil, err
	}
	if string(a) != string(b) {
		return nil, domain.Errorf(domain.KindValidation, "password", "entries do not match")
	}
	return a, nil
}
