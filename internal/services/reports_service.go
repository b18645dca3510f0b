package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/repositories"
	"dpxcruise/internal/utils"

	"github.com/xuri/excelize/v2"
)

// ReportsService aggregates per-trip numbers for the employee dashboard.
type ReportsService struct {
	DB        *sql.DB
	RequestID string
}

func (s ReportsService) RoomOccupancy(ctx context.Context, tripID int64) (map[string]int, error) {
	return repositories.RoomRepository{DB: s.DB}.OccupancyCounts(ctx, tripID)
}

func (s ReportsService) PassengerDistribution(ctx context.Context, tripID int64) (models.PassengerDistribution, error) {
	return repositories.PassengerInfoRepository{DB: s.DB}.Distribution(ctx, tripID)
}

// InvoiceCount maps each invoicing day to the passengers invoiced that day.
func (s ReportsService) InvoiceCount(ctx context.Context, tripID int64) (map[string]int, error) {
	return repositories.InvoiceRepository{DB: s.DB}.InvoicedPassengersByDay(ctx, tripID)
}

// ExportTrip writes the trip dashboard and passenger roster to a workbook.
func (s ReportsService) ExportTrip(ctx context.Context, tripID int64) ([]byte, string, error) {
	occupancy, err := s.RoomOccupancy(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	dist, err := s.PassengerDistribution(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	invoiced, err := s.InvoiceCount(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	roster, err := BookingService{DB: s.DB, RequestID: s.RequestID}.TripRoster(ctx, tripID)
	if err != nil {
		return nil, "", err
	}

	data, err := buildTripWorkbook(occupancy, dist, invoiced, roster)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "reports", "export_trip", fmt.Sprintf("trip_id=%d groups=%d", tripID, len(roster)))
	return data, fmt.Sprintf("TRIP_%d_REPORT.xlsx", tripID), nil
}

func buildTripWorkbook(occupancy map[string]int, dist models.PassengerDistribution, invoiced map[string]int, roster []models.GroupRoster) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}

	row := 1
	section := func(title string, counts map[string]int) error {
		if err := setRow(f, summary, row, title, "Count"); err != nil {
			return err
		}
		row++
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := setRow(f, summary, row, k, counts[k]); err != nil {
				return err
			}
			row++
		}
		row++
		return nil
	}
	for _, sec := range []struct {
		title  string
		counts map[string]int
	}{
		{"Room occupancy", occupancy},
		{"Nationality", dist.Nationality},
		{"Gender", dist.Gender},
		{"Invoiced passengers by day", invoiced},
	} {
		if err := section(sec.title, sec.counts); err != nil {
			return nil, err
		}
	}

	const passengers = "Passengers"
	if _, err := f.NewSheet(passengers); err != nil {
		return nil, err
	}
	if err := setRow(f, passengers, 1, "Group", "Passenger", "First name", "Last name", "Email", "Gender", "Nationality", "Room"); err != nil {
		return nil, err
	}
	row = 2
	for _, g := range roster {
		for _, p := range g.Passengers {
			room := ""
			if p.RoomID != nil {
				room = fmt.Sprint(*p.RoomID)
			}
			if err := setRow(f, passengers, row, g.Group.ID, p.ID, p.FirstName, p.LastName, p.Email, p.Gender, p.Nationality, room); err != nil {
				return nil, err
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
