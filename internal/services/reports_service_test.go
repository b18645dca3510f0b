package services

import (
	"bytes"
	"testing"

	"dpxcruise/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildTripWorkbook(t *testing.T) {
	room := int64(1)
	roster := []models.GroupRoster{{
		Group: models.Group{ID: 5, TripID: 2, Size: 2},
		Passengers: []models.Passenger{
			{ID: 9, GroupID: 5, RoomID: &room, FirstName: "Ann", LastName: "Lee", Nationality: "US"},
			{ID: 10, GroupID: 5, FirstName: "Bo", LastName: "Lee"},
		},
	}}
	data, err := buildTripWorkbook(
		map[string]int{"Occupied": 1, "Not-occupied": 3},
		models.PassengerDistribution{Nationality: map[string]int{"US": 1, "Unknown": 1}, Gender: map[string]int{"Unknown": 2}},
		map[string]int{"2025-06-01": 2},
		roster,
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Passengers"}, f.GetSheetList())

	v, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Room occupancy", v)
	v, _ = f.GetCellValue("Summary", "A2")
	assert.Equal(t, "Not-occupied", v)
	v, _ = f.GetCellValue("Summary", "B2")
	assert.Equal(t, "3", v)

	rows, err := f.GetRows("Passengers")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"5", "9", "Ann", "Lee", "", "", "US", "1"}, rows[1])
	assert.Equal(t, "Bo", rows[2][2])
}
