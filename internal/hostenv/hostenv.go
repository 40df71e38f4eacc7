package hostenv

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
)

// AssistantVar is both a detection sentinel and the flag handed to the server.
const AssistantVar = "AI_ASSISTANT"

// Sentinels lists the variables known assistant hosts set for the processes they launch.
var Sentinels = []string{
	"GITHUB_COPILOT_TOKEN",
	"CURSOR_SESSION",
	"CLAUDE_SESSION",
	AssistantVar,
}

// Environment is the host environment as observed once at process start.
type Environment struct {
	CopilotToken  string `env:"GITHUB_COPILOT_TOKEN"`
	CursorSession string `env:"CURSOR_SESSION"`
	ClaudeSession string `env:"CLAUDE_SESSION"`
	AIAssistant   string `env:"AI_ASSISTANT"`

	// Home overrides install root discovery.
	Home string `env:"MCP_ENTRA_HOME"`

	vars []string
}

// Load snapshots the process environment.
func Load() (Environment, error) {
	var env Environment
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Environment{}, fmt.Errorf("read environment: %w", err)
	}
	env.vars = os.Environ()
	return env, nil
}

// AssistantHost reports whether any sentinel variable was set to a non-empty value.
func (e Environment) AssistantHost() bool {
	for _, v := range []string{e.CopilotToken, e.CursorSession, e.ClaudeSession, e.AIAssistant} {
		if v != "" {
			return true
		}
	}
	return false
}

// ChildEnv returns the environment for the launched server: the snapshot taken by
// Load, plus AI_ASSISTANT=true when an assistant host was detected through another
// sentinel.
func (e Environment) ChildEnv() []string {
	out := append([]string(nil), e.vars...)
	if e.AssistantHost() && e.AIAssistant == "" {
		out = append(out, AssistantVar+"=true")
	}
	return out
}
