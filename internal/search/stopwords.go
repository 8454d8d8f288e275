package search

// russianStopWords are dropped during keyword extraction. The list mirrors
// the most frequent function words plus a handful of semantically empty verbs
// and adjectives that inflate overlap counts without adding meaning.
var russianStopWords = map[string]struct{}{
	"в": {}, "и": {}, "на": {}, "с": {}, "по": {}, "к": {}, "о": {}, "от": {},
	"для": {}, "из": {}, "у": {}, "при": {}, "это": {}, "как": {}, "что": {},
	"где": {}, "когда": {}, "кто": {}, "чем": {}, "же": {}, "бы": {}, "ли": {},
	"а": {}, "но": {}, "или": {}, "да": {}, "нет": {}, "не": {}, "ни": {},
	"то": {}, "те": {}, "эти": {}, "вы": {}, "мы": {}, "он": {}, "она": {},
	"они": {}, "оно": {}, "я": {}, "ты": {}, "мой": {}, "твой": {}, "его": {},
	"её": {}, "наш": {}, "ваш": {}, "их": {}, "был": {}, "была": {}, "было": {},
	"были": {}, "есть": {}, "быть": {}, "делать": {}, "сделать": {}, "мочь": {},
	"хотеть": {}, "сказать": {}, "говорить": {}, "знать": {}, "стать": {},
	"видеть": {}, "хороший": {}, "новый": {}, "большой": {}, "другой": {},
}

func isStopWord(word string) bool {
	_, ok := russianStopWords[word]
	return ok
}
