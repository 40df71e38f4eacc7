package setup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/uniQuk/mcpEntra/internal/envfile"
)

var (
	// ErrInputClosed indicates input ended before every question was answered.
	ErrInputClosed  = errors.New("input closed before setup questions were answered")
	errPromptClosed = errors.New("prompt already closed")
)

type question struct {
	label  string
	assign func(*envfile.Credentials, string)
}

// questions are asked exactly once each, in this order.
var questions = []question{
	{"Enter your Microsoft Entra ID Tenant ID: ", func(c *envfile.Credentials, v string) { c.TenantID = v }},
	{"Enter your App Registration Client ID: ", func(c *envfile.Credentials, v string) { c.ClientID = v }},
	{"Enter your App Registration Client Secret: ", func(c *envfile.Credentials, v string) { c.ClientSecret = v }},
}

// prompter reads one answer per line. Answers are not echoed back or masked.
// Input is consumed a byte at a time so nothing past the last answer is taken
// from a stream the server inherits.
type prompter struct {
	r   io.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{r: in, out: out}
}

func (p *prompter) ask(label string) (string, error) {
	if p.r == nil {
		return "", errPromptClosed
	}
	fmt.Fprint(p.out, label)
	line, err := p.readLine()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.out)
		return "", ErrInputClosed
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r"), nil
}

// readLine returns the text before the next newline. A final line without a
// newline is returned as is; io.EOF is only reported when nothing was read.
func (p *prompter) readLine() (string, error) {
	var line []byte
	var b [1]byte
	for {
		n, err := p.r.Read(b[:])
		if n == 1 {
			if b[0] == '\n' {
				return string(line), nil
			}
			line = append(line, b[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(line) > 0 {
				return string(line), nil
			}
			return "", err
		}
	}
}

// Close releases the reader. The underlying stream stays open because the
// launched server inherits it.
func (p *prompter) Close() error {
	p.r = nil
	return nil
}

func (p *prompter) closed() bool {
	return p.r == nil
}

func collectCredentials(p *prompter) (envfile.Credentials, error) {
	defer p.Close()

	var creds envfile.Credentials
	for _, q := range questions {
		answer, err := p.ask(q.label)
		if err != nil {
			return envfile.Credentials{}, err
		}
		q.assign(&creds, answer)
	}
	return creds, nil
}
