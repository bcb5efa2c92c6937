package analyzer

// germanStopwords are common function words excluded from keyword extraction.
var germanStopwords = toSet([]string{
	"der", "die", "das", "den", "dem", "des",
	"ein", "eine", "einer", "eines", "einem", "einen",
	"und", "oder", "aber", "sondern", "denn", "doch", "weil", "dass", "wenn", "als", "wie",
	"ich", "du", "er", "sie", "es", "wir", "ihr", "ihre", "ihnen", "ihm", "ihn", "uns", "unser", "unsere", "sich",
	"ist", "sind", "war", "waren", "bin", "bist", "sein", "wird", "werden", "wurde", "wurden",
	"hat", "haben", "hatte", "hatten",
	"kann", "können", "muss", "müssen", "soll", "sollen", "will", "wollen", "darf", "dürfen", "möchten",
	"mit", "von", "zu", "zum", "zur", "bei", "aus", "nach", "für", "auf", "an", "in", "im", "am", "um",
	"über", "unter", "vor", "durch", "gegen", "ohne",
	"auch", "nicht", "noch", "nur", "schon", "sehr", "mehr", "alle", "diese", "dieser", "dieses",
	"was", "wer", "wo", "hier", "dort", "so",
})

type theme struct {
	name    string
	markers []string
}

// businessThemes is matched with naive substring counting: a marker that is
// part of a longer word is counted as well.
var businessThemes = []theme{
	{name: "service", markers: []string{"service", "dienstleistung", "beratung", "support", "betreuung"}},
	{name: "qualität", markers: []string{"qualität", "hochwertig", "professionell", "zuverlässig", "präzis"}},
	{name: "lösung", markers: []string{"lösung", "problem", "ansatz", "konzept", "umsetzung"}},
	{name: "kunden", markers: []string{"kunde", "kundin", "klient", "zufriedenheit", "vertrauen"}},
	{name: "unternehmen", markers: []string{"unternehmen", "firma", "betrieb", "geschäft", "gmbh"}},
	{name: "innovation", markers: []string{"innovation", "innovativ", "modern", "digital", "technologie"}},
	{name: "erfolg", markers: []string{"erfolg", "wachstum", "ergebnis", "effizienz", "ziel"}},
	{name: "regional", markers: []string{"region", "lokal", "schweiz", "vor ort", "heimisch"}},
	{name: "verkauf", markers: []string{"verkauf", "angebot", "preis", "bestellung", "rabatt"}},
	{name: "kommunikation", markers: []string{"kommunikation", "kontakt", "information", "anfrage", "austausch"}},
}

var swissCantons = []string{
	"Zürich", "Bern", "Luzern", "Uri", "Schwyz", "Obwalden", "Nidwalden", "Glarus", "Zug",
	"Freiburg", "Solothurn", "Basel-Stadt", "Basel-Landschaft", "Schaffhausen",
	"Appenzell Ausserrhoden", "Appenzell Innerrhoden", "St. Gallen", "Graubünden", "Aargau",
	"Thurgau", "Tessin", "Waadt", "Wallis", "Neuenburg", "Genf", "Jura",
}

var swissCities = []string{
	"Zürich", "Genf", "Basel", "Lausanne", "Bern", "Winterthur", "Luzern", "St. Gallen",
	"Lugano", "Biel", "Thun", "Köniz", "La Chaux-de-Fonds", "Schaffhausen", "Fribourg",
	"Chur", "Vernier", "Neuchâtel", "Sitten", "Lancy", "Emmen", "Yverdon", "Kriens",
	"Rapperswil", "Dübendorf", "Montreux", "Frauenfeld", "Baden", "Aarau", "Olten",
	"Locarno", "Davos",
}

var swissTerms = []string{
	"schweiz", "swiss", "eidgenössisch", "helvetisch", "kantonal", "chf", "franken",
	"grüezi", "mundart", "bundesrat", "gemeinde", "romandie", "alpen", "confoederatio", "svizzera",
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
