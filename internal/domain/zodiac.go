package domain

// Zodiac signs use the product's French vocabulary; the chart provider
// response is normalized to these values before persistence.
var ZodiacSigns = []string{
	"Bélier", "Taureau", "Gémeaux", "Cancer", "Lion", "Vierge",
	"Balance", "Scorpion", "Sagittaire", "Capricorne", "Verseau", "Poissons",
}

// signElements maps each sign to its classical element.
var signElements = map[string]string{
	"Bélier": "Feu", "Lion": "Feu", "Sagittaire": "Feu",
	"Taureau": "Terre", "Vierge": "Terre", "Capricorne": "Terre",
	"Gémeaux": "Air", "Balance": "Air", "Verseau": "Air",
	"Cancer": "Eau", "Scorpion": "Eau", "Poissons": "Eau",
}

// signModalities maps each sign to its modality.
var signModalities = map[string]string{
	"Bélier": "Cardinal", "Cancer": "Cardinal", "Balance": "Cardinal", "Capricorne": "Cardinal",
	"Taureau": "Fixé", "Lion": "Fixé", "Scorpion": "Fixé", "Verseau": "Fixé",
	"Gémeaux": "Mutable", "Vierge": "Mutable", "Sagittaire": "Mutable", "Poissons": "Mutable",
}

// ElementOf returns the element for a sign, or "" for an unknown sign.
func ElementOf(sign string) string {
	return signElements[sign]
}

// ModalityOf returns the modality for a sign, or "" for an unknown sign.
func ModalityOf(sign string) string {
	return signModalities[sign]
}
