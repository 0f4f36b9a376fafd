package models

// View is the page currently shown. Exactly one view is active at a time.
type View int

const (
	ViewHome View = iota
	ViewForm
	ViewAbout
	ViewTerms
	ViewPrivacy
	ViewDisclaimer
)

var viewNames = map[View]string{
	ViewHome:       "home",
	ViewForm:       "form",
	ViewAbout:      "about",
	ViewTerms:      "terms",
	ViewPrivacy:    "privacy",
	ViewDisclaimer: "disclaimer",
}

var viewTitles = map[View]string{
	ViewHome:       "使用者旅程地圖",
	ViewForm:       "紀錄使用者旅程地圖",
	ViewAbout:      "關於這個專案",
	ViewTerms:      "使用守則",
	ViewPrivacy:    "隱私政策",
	ViewDisclaimer: "免責聲明",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "unknown"
}

func (v View) Title() string {
	return viewTitles[v]
}

// IsLegal reports whether v is one of the static legal pages.
func (v View) IsLegal() bool {
	return v == ViewTerms || v == ViewPrivacy || v == ViewDisclaimer
}

// LegalView resolves a legal page name (terms, privacy, disclaimer).
func LegalView(page string) (View, bool) {
	for v, name := range viewNames {
		if v.IsLegal() && name == page {
			return v, true
		}
	}
	return ViewHome, false
}

// LegalViews lists the legal pages in footer order.
func LegalViews() []View {
	return []View{ViewTerms, ViewPrivacy, ViewDisclaimer}
}
