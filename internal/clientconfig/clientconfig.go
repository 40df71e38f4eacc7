package clientconfig

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/uniQuk/mcpEntra/internal/envfile"
)

// ServerName is the key every client uses for this server.
const ServerName = "microsoft-graph"

// APIKeyHeader carries the secret key on SSE requests.
const APIKeyHeader = "x-api-key"

// Format selects the text encoding of a rendered document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
	}
}

// SSEServer connects to an already running server over SSE.
type SSEServer struct {
	Type    string            `json:"type" yaml:"type"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers" yaml:"headers"`
}

// SSEDocument is the shape VS Code expects.
type SSEDocument struct {
	Servers map[string]SSEServer `json:"servers" yaml:"servers"`
}

// StdioEnv is the environment a client passes to the server it spawns.
type StdioEnv struct {
	TenantID     string `json:"TENANT_ID" yaml:"TENANT_ID"`
	ClientID     string `json:"CLIENT_ID" yaml:"CLIENT_ID"`
	ClientSecret string `json:"CLIENT_SECRET" yaml:"CLIENT_SECRET"`
	AIAssistant  string `json:"AI_ASSISTANT" yaml:"AI_ASSISTANT"`
}

// StdioServer is launched by the client itself through npx.
type StdioServer struct {
	Command string   `json:"command" yaml:"command"`
	Args    []string `json:"args" yaml:"args"`
	Env     StdioEnv `json:"env" yaml:"env"`
}

// StdioDocument is the shape Claude Desktop and Cursor expect.
type StdioDocument struct {
	MCPServers map[string]StdioServer `json:"mcpServers" yaml:"mcpServers"`
}

// Document is one client's configuration with the text shown above it.
type Document struct {
	Client       string
	Instructions string
	Body         any
}

// Options carry the server coordinates advertised to clients.
type Options struct {
	URL     string
	Package string
}

// Build derives the three client documents. An empty apiKey yields empty SSE
// headers.
func Build(creds envfile.Credentials, apiKey string, opts Options) []Document {
	headers := map[string]string{}
	if apiKey != "" {
		headers[APIKeyHeader] = apiKey
	}
	sse := SSEDocument{
		Servers: map[string]SSEServer{
			ServerName: {Type: "sse", URL: opts.URL, Headers: headers},
		},
	}

	stdio := func() StdioDocument {
		return StdioDocument{
			MCPServers: map[string]StdioServer{
				ServerName: {
					Command: "npx",
					Args:    []string{"-y", opts.Package},
					Env: StdioEnv{
						TenantID:     creds.TenantID,
						ClientID:     creds.ClientID,
						ClientSecret: creds.ClientSecret,
						AIAssistant:  "true",
					},
				},
			},
		}
	}

	return []Document{
		{
			Client:       "VS Code",
			Instructions: "Run the 'MCP: Add server' command in VS Code and paste:",
			Body:         sse,
		},
		{
			Client:       "Claude Desktop",
			Instructions: "Add this to your Claude Desktop configuration file:",
			Body:         stdio(),
		},
		{
			Client:       "Cursor",
			Instructions: "Add this to your Cursor configuration file:",
			Body:         stdio(),
		},
	}
}

// Encode renders a document body in the requested format.
func Encode(d Document, format Format) (string, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(d.Body)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d.Body); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
}
