package types

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Product is one recommended item as the model emits it. Price stays a
// display string (the model writes "$999+"), never a number.
type Product struct {
	Name          string `json:"name"`
	Type          string `json:"type,omitempty"`
	Price         string `json:"price"`
	Specs         string `json:"specs"`
	Pros          string `json:"pros"`
	Image         string `json:"image"`
	SourceURL     string `json:"sourceUrl"`
	OriginalImage string `json:"originalImage,omitempty"`
}

type Explanation struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ResponsePayload is the flattened, normalized form of a completed
// assistant turn.
type ResponsePayload struct {
	ChatMessage      string        `json:"chatMessage"`
	Products         []Product     `json:"products"`
	Explanations     []Explanation `json:"explanations"`
	DynamicComponent string        `json:"dynamicComponent,omitempty"`
	ResponseType     string        `json:"responseType,omitempty"`
}

type EnhanceRequest struct {
	Products []Product `json:"products"`
}

type EnhanceResponse struct {
	Products []Product `json:"products"`
}

type ImageSearchResponse struct {
	ImageURL *string `json:"imageUrl"`
}
