package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	gwcli "github.com/zkgateway/gateway-client/internal/cli"
	"github.com/zkgateway/gateway-client/internal/clientkeys"
	"github.com/zkgateway/gateway-client/internal/envelope"
	"github.com/zkgateway/gateway-client/internal/sizeclass"
	"github.com/zkgateway/gateway-client/internal/ticket"
	"github.com/zkgateway/gateway-client/pkg/chatgw"
	"github.com/zkgateway/gateway-client/pkg/gateway"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "gwclient",
		Usage: "Send one end-to-end encrypted chat request through the LLM gateway",
		Flags: []cli.Flag{
			gwcli.GatewayURLFlag,
			gwcli.GatewayPublicKeyFlag,
			gwcli.ModelFlag,
			gwcli.TokenClassFlag,
			gwcli.TicketFileFlag,
			gwcli.BearerTokenFlag,
			gwcli.PromptFlag,
			gwcli.LogLevelFlag,
			gwcli.ClientMnemonicFlag,
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx := context.Background()
	cfg := gwcli.NewConfigFromCLI(c)

	logger, err := gwcli.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	class, err := sizeclass.Parse(cfg.TokenClass)
	if err != nil {
		return fmt.Errorf("invalid token class: %w", err)
	}

	pubKey, err := envelope.NewGatewayPublicKeyFromBase64(cfg.GatewayPublicKey)
	if err != nil {
		return fmt.Errorf("invalid gateway public key: %w", err)
	}

	ticketSource, err := buildTicketSource(cfg.TicketFile)
	if err != nil {
		return fmt.Errorf("failed to set up ticket source: %w", err)
	}

	var clientKeys *clientkeys.Keys
	if cfg.ClientMnemonic != "" {
		clientKeys, err = clientkeys.DeriveFromMnemonic(cfg.ClientMnemonic)
		if err != nil {
			return fmt.Errorf("failed to derive client signing identity: %w", err)
		}
		logger.Info("request signing enabled", zap.String("signer_address", clientKeys.Address))
	}

	client, err := gateway.New(gateway.Config{
		GatewayURL:   cfg.GatewayURL,
		PublicKey:    pubKey,
		BearerToken:  cfg.BearerToken,
		Logger:       logger,
		SignRequests: clientKeys != nil,
		ClientKeys:   clientKeys,
	}, ticketSource)
	if err != nil {
		return fmt.Errorf("failed to build gateway client: %w", err)
	}

	prompt := cfg.Prompt
	if prompt == "" {
		prompt = "Hello, gateway."
	}
	req := chatgw.Request{
		Model: cfg.Model,
		Messages: []chatgw.Message{
			{Role: "user", Content: prompt},
		},
	}

	result, err := client.Infer(ctx, class, req)
	if err != nil {
		return fmt.Errorf("inference failed: %w", err)
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render reply: %w", err)
	}
	fmt.Println(string(pretty))
	return nil
}

func buildTicketSource(path string) (ticket.Source, error) {
	if path == "" {
		return ticket.NewDummySource(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ticket file: %w", err)
	}
	return ticket.LoadFilePool(data)
}
