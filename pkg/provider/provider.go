package provider

type Model struct {
	ID string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}
