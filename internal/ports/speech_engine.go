package ports

// Contract for the speech output collaborator.
type SpeechEngine interface {
	// Speak one utterance. A failure affects only that utterance.
	Speak(text string) error

	// Stop any in-progress speech.
	Stop()
}
