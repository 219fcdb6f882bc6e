package cli

import "github.com/urfave/cli/v2"

var (
	GatewayURLFlag = &cli.StringFlag{
		Name:     "gateway-url",
		Usage:    "Base URL of the encrypted LLM gateway",
		EnvVars:  []string{"GATEWAY_URL"},
		Required: true,
	}

	GatewayPublicKeyFlag = &cli.StringFlag{
		Name:     "gateway-public-key",
		Usage:    "Base64-encoded raw 32-byte X25519 public key of the gateway",
		EnvVars:  []string{"GATEWAY_PUBLIC_KEY_B64"},
		Required: true,
	}

	ModelFlag = &cli.StringFlag{
		Name:    "model",
		Usage:   "Model identifier to request",
		Value:   "default",
		EnvVars: []string{"MODEL"},
	}

	TokenClassFlag = &cli.StringFlag{
		Name:    "token-class",
		Usage:   "Size class to request (c256, c512, c1024, c2048, c4096)",
		Value:   "c1024",
		EnvVars: []string{"TOKEN_CLASS"},
	}

	TicketFileFlag = &cli.StringFlag{
		Name:    "ticket-file",
		Usage:   "Path to a JSON ticket pool file; omit to use a dummy development ticket source",
		EnvVars: []string{"GATEWAY_TICKET_FILE"},
	}

	BearerTokenFlag = &cli.StringFlag{
		Name:    "bearer-token",
		Usage:   "Bearer token sent on every request to the gateway",
		EnvVars: []string{"GATEWAY_BEARER_TOKEN"},
	}

	ClientMnemonicFlag = &cli.StringFlag{
		Name:    "client-mnemonic",
		Usage:   "BIP-39 mnemonic deriving an optional signing identity; when set, every request_id is signed for local audit logging",
		EnvVars: []string{"GATEWAY_CLIENT_MNEMONIC"},
	}

	PromptFlag = &cli.StringFlag{
		Name:    "prompt",
		Usage:   "User prompt text for the single chat message sent to the gateway",
		EnvVars: []string{"PROMPT"},
	}

	LogLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Usage:   "Log level (debug, info, warn, error)",
		EnvVars: []string{"LOG_LEVEL"},
	}
)
