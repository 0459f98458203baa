package api

type AnnounceRequest struct {
	Keyword string `json:"keyword"`
	Mood    string `json:"mood"`

	BGMURL string `json:"bgmUrl"`
}

type AnnounceResponse struct {
	Script string `json:"script"`

	// Audio is base64-encoded by the JSON encoder.
	Audio []byte `json:"audioBase64"`

	ContentType string `json:"contentType"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
