package domain

// SignEntry is one entry of the fortune-sign dataset. Immutable once
// fetched; the dataset is cached process-wide after the first load.
type SignEntry struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Explain string `json:"explain"`
}
