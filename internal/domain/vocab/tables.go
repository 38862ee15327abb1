package vocab

// Category canonical values.
const (
	CategoryDress     = "dress"
	CategoryJacket    = "jacket"
	CategorySkirt     = "skirt"
	CategoryBag       = "bag"
	CategoryShoes     = "shoes"
	CategoryJewelry   = "jewelry"
	CategoryAccessory = "accessory"
)

// Categories maps product categories to their synonyms.
var Categories = Table{
	{CategoryDress, []string{"dresses", "gown", "gowns", "robe", "robes", "abaya", "abayas", "kaftan", "maxi", "فستان", "فساتين", "عباية"}},
	{CategoryJacket, []string{"jackets", "coat", "coats", "blazer", "blazers", "جاكيت", "معطف"}},
	{CategorySkirt, []string{"skirts", "تنورة"}},
	{CategoryBag, []string{"bags", "handbag", "handbags", "clutch", "clutches", "purse", "tote", "حقيبة", "شنطة"}},
	{CategoryShoes, []string{"shoe", "heels", "sandals", "boots", "sneakers", "pumps", "حذاء", "أحذية"}},
	{CategoryJewelry, []string{"jewellery", "necklace", "necklaces", "earrings", "bracelet", "bracelets", "ring", "rings", "مجوهرات"}},
	{CategoryAccessory, []string{"accessories", "scarf", "scarves", "belt", "belts", "hat", "hats", "headpiece", "veil", "اكسسوارات", "إكسسوارات"}},
}

// AccessoryCategories are the categories that count as "accessories were requested".
var AccessoryCategories = map[string]bool{
	CategoryBag:       true,
	CategoryShoes:     true,
	CategoryJewelry:   true,
	CategoryAccessory: true,
}

// AccessoryKeywords mark a product as an accessory type.
var AccessoryKeywords = WordList{
	"accessory", "accessories", "bag", "clutch", "purse", "handbag", "shoes", "heels", "sandals",
	"jewelry", "jewellery", "necklace", "earrings", "bracelet", "ring", "scarf", "belt", "hat", "veil", "headpiece",
}

// DressKeywords mark a product as a dress.
var DressKeywords = WordList{"dress", "dresses", "gown", "gowns", "robe", "abaya", "kaftan"}

// Materials maps fabrics to their synonyms.
var Materials = Table{
	{"leather", []string{"faux leather", "vegan leather", "جلد"}},
	{"satin", []string{"silk satin", "ساتان"}},
	{"denim", []string{"jean", "jeans"}},
	{"wool", []string{"woolen", "woollen", "cashmere", "صوف"}},
	{"cotton", []string{"قطن"}},
	{"linen", []string{"كتان"}},
	{"chiffon", []string{"شيفون"}},
	{"velvet", []string{"velour", "مخمل"}},
	{"lace", []string{"دانتيل"}},
	{"sequin", []string{"sequins", "sequined", "sequinned", "glitter", "ترتر"}},
}

// Themes maps occasions to their synonyms. Canonical values are tag slugs.
var Themes = Table{
	{"wedding", []string{"weddings", "bridal", "bride", "bridesmaid", "wedding guest", "زفاف", "عرس"}},
	{"engagement", []string{"engagement party", "خطوبة"}},
	{"gala", []string{"black tie", "red carpet"}},
	{"night-out", []string{"night out", "date night", "clubbing"}},
	{"cocktail", []string{"cocktail party"}},
	{"prom", []string{"homecoming"}},
	{"graduation", []string{"grad", "تخرج"}},
	{"birthday", []string{"bday", "عيد ميلاد"}},
	{"eid", []string{"ramadan", "عيد", "رمضان"}},
	{"office", []string{"workwear", "work outfit", "business casual", "مكتب"}},
	{"beach", []string{"resort", "شاطئ"}},
	{"summer", []string{"summery", "صيف"}},
	{"vacation", []string{"holiday", "travel"}},
	{"evening", []string{"سهرة"}},
	{"party", []string{"parties", "حفلة"}},
	{"formal", []string{"formal event"}},
	{"casual", []string{"everyday", "casual wear", "كاجوال"}},
}

// Colors maps color families to their synonyms.
var Colors = Table{
	{"red", []string{"wine", "burgundy", "maroon", "crimson", "scarlet", "cherry", "أحمر", "احمر"}},
	{"pink", []string{"blush", "rose", "fuchsia", "magenta", "وردي", "زهري"}},
	{"orange", []string{"coral", "peach", "rust", "برتقالي"}},
	{"yellow", []string{"mustard", "lemon", "أصفر", "اصفر"}},
	{"green", []string{"emerald", "olive", "sage", "mint", "khaki", "أخضر", "اخضر"}},
	{"blue", []string{"navy", "cobalt", "royal blue", "sky blue", "teal", "turquoise", "أزرق", "ازرق", "كحلي"}},
	{"purple", []string{"lilac", "lavender", "violet", "plum", "mauve", "بنفسجي"}},
	{"black", []string{"noir", "jet", "أسود", "اسود"}},
	{"white", []string{"ivory", "cream", "off white", "أبيض", "ابيض"}},
	{"beige", []string{"nude", "champagne", "taupe", "sand", "بيج"}},
	{"brown", []string{"chocolate", "camel", "tan", "mocha", "بني"}},
	{"gold", []string{"golden", "ذهبي"}},
	{"silver", []string{"metallic silver", "فضي"}},
	{"grey", []string{"gray", "charcoal", "رمادي"}},
}

// Styles are aesthetic preferences harvested into the session.
var Styles = Table{
	{"boho", []string{"bohemian"}},
	{"minimalist", []string{"minimal", "simple", "clean"}},
	{"classic", []string{"timeless", "elegant", "sophisticated"}},
	{"modest", []string{"covered", "long sleeve", "long sleeves", "محتشم"}},
	{"vintage", []string{"retro"}},
	{"romantic", []string{"feminine", "floral", "ruffles"}},
	{"edgy", []string{"bold", "statement"}},
	{"sexy", []string{"bodycon", "backless", "plunging"}},
}

// Lengths describe garment lengths, used to answer length questions.
var Lengths = Table{
	{"maxi", []string{"floor length", "floor-length", "full length"}},
	{"midi", []string{"tea length", "calf length"}},
	{"mini", []string{"short"}},
	{"knee length", []string{"knee-length"}},
	{"ankle length", []string{"ankle-length"}},
}

// DiscoveryVerbs signal an explicit request to see products.
var DiscoveryVerbs = WordList{
	"show", "recommend", "recommendation", "recommendations", "suggest", "find", "looking for",
	"search", "browse", "do you have", "got any", "options", "أرني", "اعرض", "ابحث", "اقترح",
}

// OutfitVerbs signal a generic outfit request with no explicit category.
var OutfitVerbs = WordList{
	"outfit", "outfits", "something to wear", "what should i wear", "what to wear", "look for", "ماذا ألبس",
}
