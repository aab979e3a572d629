package client

import "time"

// TrackedComplaint is one row of a complaint listing: the embedded complaint
// tagged with the citizen it belongs to.
type TrackedComplaint struct {
	Complaint
	ParentID       string
	ParentUsername string
	ReportedAt     time.Time
}

// FlattenComplaints turns the server's citizen-with-embedded-complaints shape
// into flat rows. N citizens with M complaints each yield N*M rows, each
// carrying its parent's id and username. A complaint without its own
// timestamp falls back to the citizen's registration time.
func FlattenComplaints(citizenList []Citizen) []TrackedComplaint {
	rows := make([]TrackedComplaint, 0)
	for _, citizen := range citizenList {
		for _, complaint := range citizen.Complaints {
			reportedAt := complaint.CreatedAt
			if reportedAt.IsZero() {
				reportedAt = citizen.CreatedAt
			}
			rows = append(rows, TrackedComplaint{
				Complaint:      complaint,
				ParentID:       citizen.ID,
				ParentUsername: citizen.Username,
				ReportedAt:     reportedAt,
			})
		}
	}
	return rows
}
