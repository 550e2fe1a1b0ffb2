package interfaces

// Clipboard is the system clipboard as seen by the engine.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}
