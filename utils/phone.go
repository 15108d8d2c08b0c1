package utils

import (
	"strings"

	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/ttacon/libphonenumber"
)

// NormalizePhone formats a phone number as E.164. Empty input stays empty.
// Numbers without a country code are parsed in PHONE_DEFAULT_REGION (default MM).
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	region := strings.ToUpper(config.StringFromEnv("PHONE_DEFAULT_REGION", "MM"))
	num, err := libphonenumber.Parse(raw, region)
	if err != nil {
		return "", InvalidArgument("invalid phone number %q", raw)
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", InvalidArgument("invalid phone number %q", raw)
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}
