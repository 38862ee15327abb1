package answers

import (
	"fmt"
	"strings"
	"time"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
	"github.com/storefront-ai/assistant-service/internal/services/escalation"
)

const policyExcerptLength = 600

// Store is the merchant data canned replies are built from.
type Store struct {
	Name                      string
	Domain                    string
	Currency                  string
	Contacts                  escalation.Contacts
	DomesticShippingDays      string
	InternationalShippingDays string
}

// ShippingETA describes the delivery windows.
func ShippingETA(lang string, s Store) string {
	return Text(lang, KeyShippingETA, s.DomesticShippingDays, s.InternationalShippingDays)
}

// ShippingLabel explains how to get a return label.
func ShippingLabel(lang string, s Store) string {
	return Text(lang, KeyShippingLabel, s.Contacts.Email)
}

// Representative lists every human contact point.
func Representative(lang string, s Store) string {
	return Text(lang, KeyRepresentative, s.Contacts.Phone, s.Contacts.Email, s.Contacts.ChatURL)
}

var policyNames = map[models.PolicyKind][2]string{
	models.PolicyRefund:   {"returns & refunds", "الإرجاع والاسترداد"},
	models.PolicyShipping: {"shipping", "الشحن"},
	models.PolicyPrivacy:  {"privacy", "الخصوصية"},
	models.PolicyTerms:    {"terms of service", "شروط الخدمة"},
}

// PolicyName is the display name of a policy kind.
func PolicyName(lang string, kind models.PolicyKind) string {
	names, ok := policyNames[kind]
	if !ok {
		return string(kind)
	}
	if lang == LangArabic {
		return names[1]
	}
	return names[0]
}

// Policy renders an excerpt of the merchant policy, or points to email when
// the catalog has none.
func Policy(lang string, snap *models.Snapshot, kind models.PolicyKind, s Store) string {
	var body string
	if snap != nil {
		body = textutil.StripHTML(snap.Policies.Get(kind))
	}
	if body == "" {
		return Text(lang, KeyPolicyMissing, PolicyName(lang, kind), s.Contacts.Email)
	}
	return Text(lang, KeyPolicy, PolicyName(lang, kind), textutil.Truncate(body, policyExcerptLength))
}

// Escalation tells the customer where a human will pick the conversation up.
func Escalation(lang string, d models.EscalationDecision, c escalation.Contacts) string {
	wait := FormatWait(lang, escalation.WaitTime(d.RecommendedChannel))
	contact := c.For(d.RecommendedChannel)
	switch {
	case contact == "":
		return Text(lang, KeyEscalationEmail, c.Email, FormatWait(lang, escalation.WaitTime(models.ChannelEmail)))
	case d.RecommendedChannel == models.ChannelPhone:
		return Text(lang, KeyEscalationPhone, contact, wait)
	case d.RecommendedChannel == models.ChannelLiveChat:
		return Text(lang, KeyEscalationChat, contact, wait)
	default:
		return Text(lang, KeyEscalationEmail, contact, wait)
	}
}

// FormatWait renders a wait time in minutes or hours.
func FormatWait(lang string, d time.Duration) string {
	if d < time.Hour {
		if lang == LangArabic {
			return fmt.Sprintf("%d دقائق", int(d.Minutes()))
		}
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	}
	if lang == LangArabic {
		return fmt.Sprintf("%d ساعة", int(d.Hours()))
	}
	return fmt.Sprintf("%d hours", int(d.Hours()))
}

// Tracking summarises a shipment lookup.
func Tracking(lang string, info models.TrackingInfo) string {
	if info.Status == "" || info.Status == models.TrackingStatusAwaitingUpdate {
		return Text(lang, KeyTrackingAwaiting, info.Number, info.Link)
	}
	out := Text(lang, KeyTrackingStatus, info.Number, strings.ReplaceAll(info.Status, "_", " "), info.Link)
	if info.Checkpoint != "" {
		out += " " + Text(lang, KeyTrackingCheckpoint, info.Checkpoint)
	}
	return out
}

// Discounts lists the promotions active at now.
func Discounts(lang string, discounts []models.Discount, now time.Time) string {
	var codes []string
	for _, d := range discounts {
		if d.Code == "" || !d.Active(now) {
			continue
		}
		switch {
		case d.Value == "":
			codes = append(codes, d.Code)
		case d.ValueType == "percentage":
			codes = append(codes, fmt.Sprintf("%s (%s%%)", d.Code, d.Value))
		default:
			codes = append(codes, fmt.Sprintf("%s (%s)", d.Code, d.Value))
		}
	}
	if len(codes) == 0 {
		return Text(lang, KeyNoDiscounts)
	}
	return Text(lang, KeyDiscounts, join(lang, codes))
}

func join(lang string, items []string) string {
	if lang == LangArabic {
		return strings.Join(items, "، ")
	}
	return strings.Join(items, ", ")
}
