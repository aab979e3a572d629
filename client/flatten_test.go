package client

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenComplaints_NxM(t *testing.T) {
	const n, m = 4, 3
	citizenList := make([]Citizen, 0, n)
	for i := 0; i < n; i++ {
		citizen := Citizen{
			ID:       fmt.Sprintf("cid-%d", i),
			Username: fmt.Sprintf("user-%d", i),
		}
		for j := 0; j < m; j++ {
			citizen.Complaints = append(citizen.Complaints, Complaint{
				ID:        fmt.Sprintf("cid-%d-complaint-%d", i, j),
				Status:    "pending",
				CreatedAt: time.Date(2024, 1, 1+j, 0, 0, 0, 0, time.UTC),
			})
		}
		citizenList = append(citizenList, citizen)
	}

	rows := FlattenComplaints(citizenList)
	require.Len(t, rows, n*m)

	for _, row := range rows {
		assert.Equal(t, "cid-"+row.ParentUsername[len("user-"):], row.ParentID)
		assert.Contains(t, row.ID, row.ParentID)
	}
}

func TestFlattenComplaints_Empty(t *testing.T) {
	assert.Empty(t, FlattenComplaints(nil))
	assert.Empty(t, FlattenComplaints([]Citizen{{Username: "alice"}}))
}

func TestFlattenComplaints_ReportedAtFallback(t *testing.T) {
	registered := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	filed := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)

	rows := FlattenComplaints([]Citizen{{
		ID:        "cid-1",
		Username:  "alice",
		CreatedAt: registered,
		Complaints: []Complaint{
			{ID: "a", CreatedAt: filed},
			{ID: "b"}, // legacy row without its own timestamp
		},
	}})

	require.Len(t, rows, 2)
	assert.Equal(t, filed, rows[0].ReportedAt)
	assert.Equal(t, registered, rows[1].ReportedAt)
}
