package message

const (
	MTypePing         string = "ping"
	MTypeTranslateReq        = "translateReq"
	MTypeTranslateRes        = "translateRes"
)

const (
	DefaultSourceLocale string = "en"
	StatusOk                   = "ok"
)

type TranslateRequest struct {
	Text         string `json:"text"          binding:"required"`
	SourceLocale string `json:"source_locale"`
	TargetLocale string `json:"target_locale" binding:"required"`
}

type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Message is the websocket envelope.
type Message struct {
	MType     string             `json:"mType"`
	Id        string             `json:"id,omitempty"`
	Translate *TranslateRequest  `json:"translate,omitempty"`
	Result    *TranslateResponse `json:"result,omitempty"`
	Error     *Error             `json:"error,omitempty"`
}
