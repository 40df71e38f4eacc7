package setup

import (
	"fmt"
	"io"

	"github.com/uniQuk/mcpEntra/internal/clientconfig"
	"github.com/uniQuk/mcpEntra/internal/envfile"
	"github.com/uniQuk/mcpEntra/internal/layout"
	"github.com/uniQuk/mcpEntra/internal/ui"
)

// Wizard performs first-run configuration for one install.
type Wizard struct {
	Layout  *layout.Layout
	In      io.Reader
	Out     io.Writer
	Secrets SecretStrategy
	Clients clientconfig.Options
}

// RunIfNeeded prompts for credentials and writes the configuration file unless
// it already exists. It reports whether setup ran.
func (w *Wizard) RunIfNeeded() (bool, error) {
	configured, err := w.Layout.ConfigExists()
	if err != nil || configured {
		return false, err
	}

	out := ui.New(w.Out)
	printIntro(out)

	creds, err := collectCredentials(newPrompter(w.In, w.Out))
	if err != nil {
		return false, err
	}

	secrets := w.Secrets
	if secrets == nil {
		secrets = GenerateSecret{}
	}
	apiKey, err := secrets.Secret()
	if err != nil {
		return false, err
	}
	if apiKey != "" {
		out.Println()
		out.Box(
			"Generated API key: "+apiKey,
			"This key will be used to secure your MCP server. Keep it safe!",
			"It is shown only this once.",
		)
	} else {
		out.Println()
		out.Warn("Running with an AI assistant - API key security bypassed.")
	}

	contents := envfile.Contents{Credentials: creds, APIKey: apiKey}
	if err := envfile.Create(w.Layout.EnvPath, contents); err != nil {
		return false, err
	}
	out.Println()
	out.Success("%s created with restricted permissions (600).", w.Layout.EnvPath)

	docs := clientconfig.Build(creds, apiKey, w.Clients)
	if err := PrintDocuments(out, docs, clientconfig.FormatJSON); err != nil {
		out.Warn("%v", err)
	}
	return true, nil
}

func printIntro(out *ui.Printer) {
	out.Heading("Microsoft Graph MCP Server Setup")
	out.Println()
	out.Println("This will guide you through setting up the Microsoft Graph MCP Server.")
	out.Println("You'll need to provide credentials for your Microsoft Entra ID tenant.")
	out.Println()
	out.Println("IMPORTANT: Make sure you have created an app registration in Microsoft Entra ID")
	out.Println("with the necessary permissions (User.Read.All, Group.Read.All, etc.)")
	out.Println()
}

// PrintDocuments writes each client document under its own heading.
func PrintDocuments(out *ui.Printer, docs []clientconfig.Document, format clientconfig.Format) error {
	for _, doc := range docs {
		text, err := clientconfig.Encode(doc, format)
		if err != nil {
			return fmt.Errorf("render %s configuration: %w", doc.Client, err)
		}
		out.Heading(doc.Client + " Configuration")
		out.Println(doc.Instructions)
		out.Printf("%s", text)
	}
	return nil
}
