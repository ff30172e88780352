package types

type Speaker string

const (
	SpeakerPhysician Speaker = "Physician"
	SpeakerPatient   Speaker = "Patient"
	SpeakerSystem    Speaker = "System"
)

// Turn is one speaker-attributed utterance span from the transcript.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// SpeakerBlocks maps a role to its utterances joined in turn order.
type SpeakerBlocks map[Speaker]string

func (blocks SpeakerBlocks) Get(speaker Speaker) string {
	return blocks[speaker]
}
