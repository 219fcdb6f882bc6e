package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// Config is the flag-driven configuration used by the CLI entry point.
// Flag values take priority over the environment via urfave/cli's EnvVars
// binding, which is resolved before NewConfigFromCLI runs.
type Config struct {
	GatewayURL       string
	GatewayPublicKey string
	Model            string
	TokenClass       string
	TicketFile       string
	BearerToken      string
	Prompt           string
	LogLevel         string
	ClientMnemonic   string
}

func NewConfigFromCLI(c *cli.Context) *Config {
	return &Config{
		GatewayURL:       c.String(GatewayURLFlag.Name),
		GatewayPublicKey: c.String(GatewayPublicKeyFlag.Name),
		Model:            c.String(ModelFlag.Name),
		TokenClass:       c.String(TokenClassFlag.Name),
		TicketFile:       c.String(TicketFileFlag.Name),
		BearerToken:      c.String(BearerTokenFlag.Name),
		Prompt:           c.String(PromptFlag.Name),
		LogLevel:         c.String(LogLevelFlag.Name),
		ClientMnemonic:   c.String(ClientMnemonicFlag.Name),
	}
}

// NewLogger builds a zap.Logger at the requested level. An empty level
// means info; an unknown level is an error.
func NewLogger(level string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case "info", "":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zapLevel
	return cfg.Build()
}
