package models

// SuspectProfile holds the static attributes of a suspect that the prompt is
// filled with. The zero value is a valid empty profile: missing data files
// degrade to it instead of failing the interrogation.
type SuspectProfile struct {
	Backstory            string   `json:"backstory"`
	Timeline             Timeline `json:"timeline"`
	RelationshipToVictim string   `json:"relationship_to_victim"`
	Tone                 string   `json:"tone"`
}

// Timeline is the suspect's account of their whereabouts. ClaimedLocation
// takes precedence over Location when both are present in the data file.
type Timeline struct {
	TimeRange       string `json:"time_range"`
	ClaimedLocation string `json:"claimed_location"`
	Location        string `json:"location"`
}
