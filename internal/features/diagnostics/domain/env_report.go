package domain

import "paypal-checkout/internal/core/config"

// EnvStatus tells whether a configuration value is present.
type EnvStatus string

const (
	EnvConfigured EnvStatus = "configured"
	EnvMissing    EnvStatus = "missing"
)

// EnvReport maps an environment variable name to its status. Values are never included.
type EnvReport map[string]EnvStatus

func statusOf(value string) EnvStatus {
	if value != "" {
		return EnvConfigured
	}
	return EnvMissing
}

// NewEnvReport reports presence of the processor settings.
func NewEnvReport(cfg config.PayPalConfig) EnvReport {
	return EnvReport{
		"PAYPAL_CLIENT_ID":     statusOf(cfg.ClientID),
		"PAYPAL_CLIENT_SECRET": statusOf(cfg.ClientSecret),
		"PAYPAL_API_BASE":      statusOf(cfg.APIBase),
	}
}

// Complete reports whether every value is configured.
func (r EnvReport) Complete() bool {
	for _, status := range r {
		if status != EnvConfigured {
			return false
		}
	}
	return true
}
