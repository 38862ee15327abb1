// Package answers builds the localized canned replies served by the
// shortcut handlers and the follow-up resolver.
package answers

import "fmt"

// Supported languages.
const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// Key identifies a reply template.
type Key string

const (
	KeyGenericError       Key = "generic_error"
	KeyEscalationPhone    Key = "escalation_phone"
	KeyEscalationChat     Key = "escalation_chat"
	KeyEscalationEmail    Key = "escalation_email"
	KeyTrackingStatus     Key = "tracking_status"
	KeyTrackingCheckpoint Key = "tracking_checkpoint"
	KeyTrackingAwaiting   Key = "tracking_awaiting"
	KeyAskTrackingNumber  Key = "ask_tracking_number"
	KeyShippingLabel      Key = "shipping_label"
	KeyRepresentative     Key = "representative"
	KeyShippingETA        Key = "shipping_eta"
	KeyPolicy             Key = "policy"
	KeyPolicyMissing      Key = "policy_missing"
	KeySizeRecommend      Key = "size_recommend"
	KeySizeKnown          Key = "size_known"
	KeySizeHeightOnly     Key = "size_height_only"
	KeyAskMeasurements    Key = "ask_measurements"
	KeyInStock            Key = "in_stock"
	KeyInStockSizes       Key = "in_stock_sizes"
	KeyOutOfStock         Key = "out_of_stock"
	KeyDiscounts          Key = "discounts"
	KeyNoDiscounts        Key = "no_discounts"
	KeyColors             Key = "colors"
	KeySingleColor        Key = "single_color"
	KeySizes              Key = "sizes"
	KeyOneSize            Key = "one_size"
	KeyPrice              Key = "price"
	KeyPriceRange         Key = "price_range"
	KeyMaterial           Key = "material"
	KeyDescription        Key = "description"
	KeyLength             Key = "length"
	KeyLink               Key = "link"
	KeyProductGone        Key = "product_gone"
	KeyDisambiguate       Key = "disambiguate"
)

var templates = map[Key][2]string{
	KeyGenericError: {
		"Sorry, something went wrong on our side. Please try again in a moment.",
		"عذراً، حدث خطأ من جهتنا. يرجى المحاولة مرة أخرى بعد قليل.",
	},
	KeyEscalationPhone: {
		"I'm connecting you with our team. Please call us at %s, the expected wait is about %s.",
		"سأحولك إلى فريقنا. يرجى الاتصال بنا على %s، وقت الانتظار المتوقع حوالي %s.",
	},
	KeyEscalationChat: {
		"I'm connecting you with our team. Start a live chat here: %s, the expected wait is about %s.",
		"سأحولك إلى فريقنا. ابدأ محادثة مباشرة هنا: %s، وقت الانتظار المتوقع حوالي %s.",
	},
	KeyEscalationEmail: {
		"I'm passing this to our team. Please email us at %s and we'll reply within %s.",
		"سأحيل طلبك إلى فريقنا. يرجى مراسلتنا على %s وسنرد خلال %s.",
	},
	KeyTrackingStatus: {
		"Your shipment %s is currently: %s. Track it here: %s",
		"شحنتك %s حالتها الآن: %s. يمكنك تتبعها هنا: %s",
	},
	KeyTrackingCheckpoint: {
		"Last checkpoint: %s.",
		"آخر نقطة تتبع: %s.",
	},
	KeyTrackingAwaiting: {
		"There's no carrier update for %s yet. It usually appears within 24 hours of dispatch. You can follow it here: %s",
		"لا يوجد تحديث من شركة الشحن للرقم %s بعد. عادةً يظهر خلال 24 ساعة من الشحن. يمكنك متابعته هنا: %s",
	},
	KeyAskTrackingNumber: {
		"Please share your tracking number from your shipping confirmation email and I'll look it up.",
		"يرجى إرسال رقم التتبع الموجود في رسالة تأكيد الشحن وسأبحث عنه.",
	},
	KeyShippingLabel: {
		"For a return label, reply with your order number or email us at %s and we'll send you a prepaid label.",
		"للحصول على ملصق الإرجاع، أرسل رقم طلبك أو راسلنا على %s وسنرسل لك ملصقاً مدفوع الأجر.",
	},
	KeyRepresentative: {
		"Of course. You can reach our team by phone at %s, by email at %s or through live chat: %s",
		"بالتأكيد. يمكنك التواصل مع فريقنا هاتفياً على %s أو عبر البريد %s أو المحادثة المباشرة: %s",
	},
	KeyShippingETA: {
		"Orders usually arrive within %s business days domestically and %s business days internationally.",
		"تصل الطلبات عادةً خلال %s أيام عمل داخل الدولة و%s أيام عمل للشحن الدولي.",
	},
	KeyPolicy: {
		"Here's a summary of our %s policy: %s",
		"إليك ملخص سياسة %s لدينا: %s",
	},
	KeyPolicyMissing: {
		"I couldn't find our %s policy right now. Please email us at %s and we'll help.",
		"لم أتمكن من العثور على سياسة %s حالياً. يرجى مراسلتنا على %s وسنساعدك.",
	},
	KeySizeRecommend: {
		"Based on your measurements (%s), I'd recommend size %s.",
		"بناءً على مقاساتك (%s)، أنصحك بالمقاس %s.",
	},
	KeySizeKnown: {
		"Our size %s fits bust %s cm, waist %s cm and hips %s cm. Share your measurements if you'd like me to double-check.",
		"مقاس %s لدينا يناسب الصدر %s سم والخصر %s سم والأرداف %s سم. أرسل مقاساتك إذا أردت التأكد.",
	},
	KeySizeHeightOnly: {
		"Thanks! At %s, our midi styles fall below the knee and maxi styles reach the floor. Share your bust, waist and hips and I'll suggest a size.",
		"شكراً! بطول %s، تصل موديلات الميدي إلى أسفل الركبة والماكسي إلى الأرض. أرسل مقاس الصدر والخصر والأرداف وسأقترح لك المقاس.",
	},
	KeyAskMeasurements: {
		"Share your bust, waist and hip measurements (cm or inches) and I'll recommend a size.",
		"أرسل مقاس الصدر والخصر والأرداف (بالسنتيمتر أو البوصة) وسأقترح عليك المقاس المناسب.",
	},
	KeyInStock: {
		"Yes, %s is in stock.",
		"نعم، %s متوفر.",
	},
	KeyInStockSizes: {
		"Yes, %s is in stock in: %s.",
		"نعم، %s متوفر بالمقاسات: %s.",
	},
	KeyOutOfStock: {
		"%s is currently out of stock.",
		"%s غير متوفر حالياً.",
	},
	KeyDiscounts: {
		"Current offers: %s",
		"العروض الحالية: %s",
	},
	KeyNoDiscounts: {
		"There are no active promo codes right now.",
		"لا توجد أكواد خصم فعالة حالياً.",
	},
	KeyColors: {
		"%s comes in: %s.",
		"%s متوفر بالألوان: %s.",
	},
	KeySingleColor: {
		"%s comes in a single color.",
		"%s متوفر بلون واحد.",
	},
	KeySizes: {
		"Available sizes for %s: %s.",
		"المقاسات المتوفرة من %s: %s.",
	},
	KeyOneSize: {
		"%s is one size.",
		"%s مقاس واحد.",
	},
	KeyPrice: {
		"%s is %s.",
		"سعر %s هو %s.",
	},
	KeyPriceRange: {
		"%s ranges from %s to %s depending on the option.",
		"يتراوح سعر %s بين %s و%s حسب الخيار.",
	},
	KeyMaterial: {
		"%s is made of %s.",
		"%s مصنوع من %s.",
	},
	KeyDescription: {
		"Here's what we know about %s: %s",
		"إليك تفاصيل %s: %s",
	},
	KeyLength: {
		"%s is %s length.",
		"طول %s: %s.",
	},
	KeyLink: {
		"Here's the link to %s: %s",
		"هذا رابط %s: %s",
	},
	KeyProductGone: {
		"I couldn't find %s in the catalog anymore. Would you like me to show similar styles?",
		"لم أعد أجد %s في المتجر. هل تريد أن أعرض عليك موديلات مشابهة؟",
	},
	KeyDisambiguate: {
		"Which one do you mean? Reply with a number:",
		"أي قطعة تقصد؟ أرسل الرقم:",
	},
}

// Text renders the template for key in lang. Unknown languages use English.
func Text(lang string, key Key, args ...interface{}) string {
	t, ok := templates[key]
	if !ok {
		return ""
	}
	format := t[0]
	if lang == LangArabic {
		format = t[1]
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
