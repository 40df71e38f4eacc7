package envfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

var sampleCreds = Credentials{
	TenantID:     "11111111-2222-3333-4444-555555555555",
	ClientID:     "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
	ClientSecret: "s3cr3t~value",
}

func TestRenderWithAPIKey(t *testing.T) {
	data, err := Render(Contents{Credentials: sampleCreds, APIKey: "key-123"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `# Microsoft Entra ID App Registration credentials
TENANT_ID=11111111-2222-3333-4444-555555555555
CLIENT_ID=aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee
CLIENT_SECRET=s3cr3t~value

# API Keys for accessing the MCP server
API_KEYS=key-123
`
	if string(data) != want {
		t.Fatalf("Render mismatch:\n--- got ---\n%s\n--- want ---\n%s", data, want)
	}
}

func TestRenderWithoutAPIKey(t *testing.T) {
	data, err := Render(Contents{Credentials: sampleCreds})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	text := string(data)
	if !strings.HasSuffix(text, "\n# API Keys disabled when running with AI assistant\n# API_KEYS=\n") {
		t.Fatalf("disabled block missing:\n%s", text)
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "API_KEYS=") {
			t.Fatalf("active API_KEYS line in disabled config: %q", line)
		}
	}
}

func TestRenderRejectsLineBreaks(t *testing.T) {
	creds := sampleCreds
	creds.ClientSecret = "abc\nAPI_KEYS=injected"
	if _, err := Render(Contents{Credentials: creds}); err == nil {
		t.Fatal("expected error for multi-line value")
	}
}

func TestCreateRestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	path := filepath.Join(t.TempDir(), ".env")
	if err := Create(path, Contents{Credentials: sampleCreds, APIKey: "k"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("mode = %o, want 600", perm)
	}
}

func TestCreateNeverOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TENANT_ID=keep\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	err := Create(path, Contents{Credentials: sampleCreds})
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("err = %v, want *WriteError", err)
	}
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("err = %v, want fs.ErrExist", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "TENANT_ID=keep\n" {
		t.Fatalf("existing file modified: %q", data)
	}
}

func TestCreateUnwritableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", ".env")
	err := Create(path, Contents{Credentials: sampleCreds})
	var werr *WriteError
	if !errors.As(err, &werr) || werr.Path != path {
		t.Fatalf("err = %v, want *WriteError for %s", err, path)
	}
}

func TestReadReturnsPersistedContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := Create(path, Contents{Credentials: sampleCreds, APIKey: "key-123"}); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Credentials != sampleCreds || got.APIKey != "key-123" {
		t.Fatalf("Read = %+v", got)
	}
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSkipsCommentsAndKeepsRawValues(t *testing.T) {
	path := writeEnv(t, "# header\n\nTENANT_ID=abc\n# API_KEYS=\nCLIENT_SECRET=a=b=c\n")
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.TenantID != "abc" {
		t.Fatalf("TENANT_ID = %q", got.TenantID)
	}
	if got.ClientSecret != "a=b=c" {
		t.Fatalf("CLIENT_SECRET = %q", got.ClientSecret)
	}
	if got.APIKey != "" {
		t.Fatalf("commented API_KEYS parsed as %q", got.APIKey)
	}
}

func TestReadRejectsMalformedLine(t *testing.T) {
	path := writeEnv(t, "TENANT_ID=x\nnot a pair\n")
	if _, err := Read(path); err == nil {
		t.Fatal("expected error")
	}
}

func TestValuesRoundTrip(t *testing.T) {
	values := []string{
		"plain",
		"",
		"client secret with spaces ",
		"  leading",
		"inner space",
		"hash # comment",
		"cost$HOME",
		`say "hi"`,
		`back\slash`,
		"a&b<c>",
	}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			creds := Credentials{TenantID: "t", ClientID: "c", ClientSecret: v}
			if err := Create(path, Contents{Credentials: creds, APIKey: "k"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
			got, err := Read(path)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if got.ClientSecret != v {
				t.Fatalf("ClientSecret = %q, want %q", got.ClientSecret, v)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"11111111-2222", "11111111-2222"},
		{"trailing ", "'trailing '"},
		{"a$b", "'a$b'"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := formatValue(tt.in)
		if err != nil {
			t.Fatalf("formatValue(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("formatValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatValueRejectsUnrepresentable(t *testing.T) {
	for _, v := range []string{"it's ", ` lead\`, `$\`, "two\nlines"} {
		if _, err := formatValue(v); !errors.Is(err, ErrUnrepresentable) {
			t.Fatalf("formatValue(%q) err = %v, want ErrUnrepresentable", v, err)
		}
	}
}
