package request

// Metadata carries patient and procedure context for a request. The domain
// stores it verbatim and never interprets it.
type Metadata struct {
	patientID string
	procedure string
	notes     string
}

// NewMetadata builds request metadata. All fields are free text and may be empty.
func NewMetadata(patientID, procedure, notes string) Metadata {
	return Metadata{
		patientID: patientID,
		procedure: procedure,
		notes:     notes,
	}
}

// PatientID returns the patient identifier.
func (m Metadata) PatientID() string {
	return m.patientID
}

// Procedure returns the medical procedure the blood is requested for.
func (m Metadata) Procedure() string {
	return m.procedure
}

// Notes returns any special requirements.
func (m Metadata) Notes() string {
	return m.notes
}
