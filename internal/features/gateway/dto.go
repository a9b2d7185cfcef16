package gateway

type SearchResponseDTO struct {
	Query   string    `json:"query"`
	Results []Library `json:"results"`
}

type DocsResponseDTO struct {
	Library       string `json:"library"`
	Name          string `json:"name"`
	Topic         string `json:"topic,omitempty"`
	SnippetCount  int    `json:"snippetCount"`
	Documentation string `json:"documentation"`
}
