package envfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"
	"unicode"

	"github.com/joho/godotenv"
)

// Variable names written to the configuration file.
const (
	KeyTenantID     = "TENANT_ID"
	KeyClientID     = "CLIENT_ID"
	KeyClientSecret = "CLIENT_SECRET"
	KeyAPIKeys      = "API_KEYS"
)

// Credentials identify the Entra ID app registration used by the server.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Contents is everything persisted by setup. An empty APIKey writes the
// disabled block.
type Contents struct {
	Credentials
	APIKey string
}

// WriteError reports a failure to persist the configuration file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

//go:embed env.tmpl
var envTemplateText string

var envTemplate = template.Must(template.New("env").Parse(envTemplateText))

// ErrUnrepresentable indicates a value that cannot be stored so that it reads
// back unchanged.
var ErrUnrepresentable = errors.New("value cannot be stored in the configuration file")

// Render produces the configuration file text.
func Render(c Contents) ([]byte, error) {
	var data Contents
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&data.TenantID, c.TenantID},
		{&data.ClientID, c.ClientID},
		{&data.ClientSecret, c.ClientSecret},
		{&data.APIKey, c.APIKey},
	} {
		v, err := formatValue(f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	var buf bytes.Buffer
	if err := envTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatValue writes v bare when a dotenv reader returns it verbatim and in
// single quotes otherwise. Single-quoted values are taken literally, so they
// cannot hold a quote or end in a backslash.
func formatValue(v string) (string, error) {
	if strings.ContainsAny(v, "\r\n") {
		return "", fmt.Errorf("%w: line breaks are not allowed", ErrUnrepresentable)
	}
	if !needsQuoting(v) {
		return v, nil
	}
	if strings.Contains(v, "'") || strings.HasSuffix(v, `\`) {
		return "", fmt.Errorf("%w: %q needs quoting but contains a quote or trailing backslash", ErrUnrepresentable, v)
	}
	return "'" + v + "'", nil
}

func needsQuoting(v string) bool {
	if v == "" {
		return false
	}
	if strings.TrimFunc(v, unicode.IsSpace) != v {
		return true
	}
	return strings.ContainsAny(v, `#$'"`)
}

// Create writes a new configuration file readable only by its owner. The mode
// is applied by the create call itself and an existing file is never replaced.
func Create(path string, c Contents) error {
	data, err := Render(c)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Read loads the persisted contents back from path.
func Read(path string) (Contents, error) {
	f, err := os.Open(path)
	if err != nil {
		return Contents{}, err
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return Contents{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return Contents{
		Credentials: Credentials{
			TenantID:     vars[KeyTenantID],
			ClientID:     vars[KeyClientID],
			ClientSecret: vars[KeyClientSecret],
		},
		APIKey: vars[KeyAPIKeys],
	}, nil
}
