package core

// Display metadata carried over from the original app so clients can render
// category badges and chart bars without shipping their own tables.

const (
	DefaultCategoryColor = "#D3D3D3"
	DefaultCategoryEmoji = "💵"
)

var categoryColors = map[string]string{
	"Faturalar":         "#FF6347",
	"Elektronik":        "#8A2BE2",
	"Dışarıda Yemek":    "#FFA07A",
	"Kahvaltılık":       "#FFDEAD",
	"Ev Eşyaları":       "#F0E68C",
	"Market Alışverişi": "#FFD700",
	"Ulaşım":            "#87CEEB",
	"Eğlence":           "#DDA0DD",
	"Maaş":              "#32CD32",
	"Prim":              "#3CB371",
	"Danışmanlık İşi":   "#4682B4",
	"Yarı Zamanlı İş":   "#DAA520",
	"Online Satışlar":   "#20B2AA",
	"Serbest Yazarlık":  "#778899",
	"Ek İş Geliri":      "#BDB76B",
}

var categoryEmojis = map[string]string{
	"Faturalar":         "📄",
	"Elektronik":        "🖥️",
	"Dışarıda Yemek":    "🍽️",
	"Kahvaltılık":       "🥐",
	"Ev Eşyaları":       "🏡",
	"Market Alışverişi": "🛒",
	"Ulaşım":            "🚌",
	"Eğlence":           "🎮",
	"Maaş":              "💰",
	"Prim":              "🎯",
	"Danışmanlık İşi":   "💼",
	"Yarı Zamanlı İş":   "⌚",
	"Online Satışlar":   "🛍️",
	"Serbest Yazarlık":  "✍️",
	"Ek İş Geliri":      "💪",
}

// Color returns the display color for the category, or the default.
func (c Category) Color() string {
	if color, ok := categoryColors[c.Name]; ok {
		return color
	}
	return DefaultCategoryColor
}

// Emoji returns the display emoji for the category, or the default.
func (c Category) Emoji() string {
	if emoji, ok := categoryEmojis[c.Name]; ok {
		return emoji
	}
	return DefaultCategoryEmoji
}
