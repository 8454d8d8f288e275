package entity

// MorphLemmatizeRequest asks the morphological service for the dictionary
// base form of each word.
type MorphLemmatizeRequest struct {
	Words []string `json:"words"`
}

// MorphLemmatizeResponse carries lemmas in the same order as the request words.
type MorphLemmatizeResponse struct {
	Lemmas []string `json:"lemmas"`
}
