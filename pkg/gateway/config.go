package gateway

import (
	"net/http"
	"time"

	"github.com/zkgateway/gateway-client/internal/clientkeys"
	"github.com/zkgateway/gateway-client/internal/envelope"
	"go.uber.org/zap"
)

// defaultPath is the configurable HTTP path the encrypted infer endpoint is
// mounted on.
const defaultPath = "/v1/infer"

// defaultTimeout is the caller-configured timeout that cancels the
// in-flight transport call when tripped.
const defaultTimeout = 60 * time.Second

// Config configures a Client.
type Config struct {
	// GatewayURL is the base URL of the gateway, e.g. "https://gw.example.com".
	GatewayURL string

	// PublicKey is the gateway's static X25519 public key.
	PublicKey *envelope.GatewayPublicKey

	// Path overrides the default "/v1/infer" mount point.
	Path string

	// BearerToken, if set, is sent as "authorization: Bearer <token>".
	BearerToken string

	// Timeout bounds one round trip; defaults to 60s. A tripped timeout
	// cancels the in-flight send/receive and surfaces a CancelledError.
	Timeout time.Duration

	// HTTPClient, if set, overrides the default http.Client used for
	// transport. Supplying your own lets callers share connection pools
	// across Client instances.
	HTTPClient *http.Client

	// Logger receives structured diagnostics. A no-op logger is used when
	// nil.
	Logger *zap.Logger

	// ExtraHeaders are added to every outbound request after the standard
	// content-type/accept/authorization headers.
	ExtraHeaders map[string]string

	// SignRequests enables per-request audit signing of the plaintext
	// request_id with ClientKeys. The signature is never placed on the wire
	// envelope; it is logged for local accountability only. Requires
	// ClientKeys to be set.
	SignRequests bool

	// ClientKeys is the optional signing identity used when SignRequests is
	// true.
	ClientKeys *clientkeys.Keys
}

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = defaultPath
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
