package model

import "time"

// MeetingInfo carries the descriptive metadata rendered into intro and outro
// bumpers. It is supplied by the recording-session collaborator and never
// mutated by the pipeline.
type MeetingInfo struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ParticipantCount int       `json:"participantCount"`
	StartedAt        time.Time `json:"startedAt"`
}

// DisplayTitle returns the title, or a generic label when none was recorded.
func (m MeetingInfo) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return "Meeting " + m.ID
}
