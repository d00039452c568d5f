package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads answers from in and writes prompts to out
type Prompter struct {
	in  *bufio.Reader
	fd  int
	tty bool
	out io.Writer
}

// New creates a prompter. Hidden input is only used when in is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Stdio is a prompter on the process's stdin and stdout
func Stdio() *Prompter {
	return New(os.Stdin, os.Stdout)
}

// PromptString prompts user for a string input
func (p *Prompter) PromptString(label string) (string, error) {
	fmt.Fprint(p.out, label)
	input, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// PromptPassword prompts user for a secret without echoing it
func (p *Prompter) PromptPassword(label string) (string, error) {
	if !p.tty {
		return p.PromptString(label)
	}

	fmt.Fprint(p.out, label)
	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

// PromptConfirm prompts user for yes/no confirmation
func (p *Prompter) PromptConfirm(label string) (bool, error) {
	input, err := p.PromptString(label + " (y/n) ")
	if err != nil {
		return false, err
	}
	response := strings.ToLower(input)
	return response == "y" || response == "yes", nil
}

// PromptString prompts on stdin
func PromptString(label string) (string, error) {
	return Stdio().PromptString(label)
}

// PromptPassword prompts on stdin without echo
func PromptPassword(label string) (string, error) {
	return Stdio().PromptPassword(label)
}

// PromptConfirm asks a yes/no question on stdin
func PromptConfirm(label string) (bool, error) {
	return Stdio().PromptConfirm(label)
}
