// Package tracking looks up shipment status by tracking number.
package tracking

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Carrier names.
const (
	CarrierUPS    = "ups"
	CarrierUSPS   = "usps"
	CarrierFedEx  = "fedex"
	CarrierDHL    = "dhl"
	CarrierAramex = "aramex"
	CarrierPostal = "postal"
)

type carrierRule struct {
	name    string
	pattern *regexp.Regexp
	link    string
}

// Ordered: the first matching shape wins.
var carrierRules = []carrierRule{
	{CarrierUPS, regexp.MustCompile(`^1Z[0-9A-Z]{16}$`), "https://www.ups.com/track?tracknum=%s"},
	{CarrierUSPS, regexp.MustCompile(`^(94|93|92|95)\d{20}$`), "https://tools.usps.com/go/TrackConfirmAction?tLabels=%s"},
	{CarrierPostal, regexp.MustCompile(`^[A-Z]{2}\d{9}[A-Z]{2}$`), ""},
	{CarrierFedEx, regexp.MustCompile(`^(\d{12}|\d{15})$`), "https://www.fedex.com/fedextrack/?trknbr=%s"},
	{CarrierAramex, regexp.MustCompile(`^\d{11}$`), "https://www.aramex.com/track/results?ShipmentNumber=%s"},
	{CarrierDHL, regexp.MustCompile(`^\d{10}$`), "https://www.dhl.com/en/express/tracking.html?AWB=%s"},
}

const universalLink = "https://t.17track.net/en#nums="

// DetectCarrier guesses the carrier from the number shape. It returns "" when unknown.
func DetectCarrier(number string) string {
	number = strings.ToUpper(strings.TrimSpace(number))
	for _, r := range carrierRules {
		if r.pattern.MatchString(number) {
			return r.name
		}
	}
	return ""
}

// Link returns the carrier tracking page for number, or the universal
// tracking link when the carrier has no page of its own.
func Link(number, carrier string) string {
	number = strings.ToUpper(strings.TrimSpace(number))
	for _, r := range carrierRules {
		if r.name == carrier && r.link != "" {
			return fmt.Sprintf(r.link, url.QueryEscape(number))
		}
	}
	return UniversalLink(number)
}

// UniversalLink is a carrier-agnostic tracking page.
func UniversalLink(number string) string {
	return universalLink + url.QueryEscape(strings.ToUpper(strings.TrimSpace(number)))
}
