package domain

// Device is a simulated light. IDs are assigned once when the registry is
// built and never change for the life of the process.
type Device struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	IsOn bool   `json:"is_on"`
}

// Input is one unit of user input from an input source: either text typed on
// the console or raw audio that still needs transcription. Exactly one of
// the two fields is set.
type Input struct {
	Text  string
	Audio []byte
}
