package speech

import "log"

// LogEngine is the server-side SpeechEngine: the real text-to-speech
// output happens on the device, so the hosted coordinator only records
// what would be spoken.
type LogEngine struct{}

func NewLogEngine() *LogEngine { return &LogEngine{} }

func (e *LogEngine) Speak(text string) error {
	log.Printf("speech say=%q", text)
	return nil
}

func (e *LogEngine) Stop() {
	log.Printf("speech stop")
}
