package gateway

import "github.com/zkgateway/gateway-client/internal/gwerr"

// interpretReply applies the reply-interpretation precedence from the
// request orchestrator design: a structured gateway error always takes
// priority over HTTP status, legacy shapes are tried only after the
// tagged-union shapes are ruled out, and a missing recognized payload is a
// ProtocolError.
func interpretReply(decrypted map[string]any, httpStatus int) (any, error) {
	if kind, _ := decrypted["kind"].(string); kind == "ok" {
		response, ok := decrypted["response"]
		if !ok {
			return nil, &gwerr.ProtocolError{Reason: `"ok" reply missing "response" field`}
		}
		return response, nil
	}

	if kind, _ := decrypted["kind"].(string); kind == "err" {
		return nil, gatewayErrorFrom(decrypted["error"])
	}

	if errObj, ok := decrypted["error"]; ok {
		return nil, gatewayErrorFrom(errObj)
	}

	if httpStatus != 0 && (httpStatus < 200 || httpStatus >= 300) {
		return nil, &gwerr.HttpError{StatusCode: httpStatus}
	}

	if upstream, ok := decrypted["upstream"]; ok {
		return upstream, nil
	}

	return nil, &gwerr.ProtocolError{Reason: "missing response payload"}
}

func gatewayErrorFrom(errObj any) error {
	m, ok := errObj.(map[string]any)
	if !ok {
		return &gwerr.GatewayError{Code: "unknown", Message: "gateway reported an error with no structured detail"}
	}
	code, _ := m["code"].(string)
	message, _ := m["message"].(string)
	if code == "" {
		code = "unknown"
	}
	return &gwerr.GatewayError{Code: code, Message: message}
}
