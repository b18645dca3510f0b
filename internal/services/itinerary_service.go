package services

import (
	"context"
	"database/sql"
	"fmt"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain"
	"dpxcruise/internal/domain/models"
	"dpxcruise/internal/repositories"
	"dpxcruise/internal/utils"
)

// ItineraryService maintains the ordered port list of each trip. Every
// mutation keeps sequence numbers contiguous from 1 and the trip endpoints
// equal to the first and last port.
type ItineraryService struct {
	DB        *sql.DB
	RequestID string
}

func (s ItineraryService) Ports(ctx context.Context) ([]models.Port, error) {
	return repositories.PortRepository{DB: s.DB}.List(ctx)
}

func (s ItineraryService) TripPorts(ctx context.Context, tripID int64) ([]models.TripPort, error) {
	return repositories.TripPortRepository{DB: s.DB}.ListByTrip(ctx, tripID)
}

// normalizeTimes accepts empty values and returns DATETIME strings.
func normalizeTimes(arrival, departure string) (string, string, error) {
	var out [2]string
	for i, raw := range []string{arrival, departure} {
		if utils.TrimOrEmpty(raw) == "" {
			continue
		}
		t, err := utils.ParseDateTime(raw)
		if err != nil {
			field := "arrivaltime"
			if i == 1 {
				field = "departuretime"
			}
			return "", "", domain.ValidationError{Field: field, Msg: "expected YYYY-MM-DD HH:MM:SS", Err: err}
		}
		out[i] = utils.FormatDateTime(t)
	}
	if out[0] != "" && out[1] != "" && out[1] < out[0] {
		return "", "", domain.ValidationError{Field: "departuretime", Msg: "must not be before arrival"}
	}
	return out[0], out[1], nil
}

// AddPort appends the port after the current last stop.
func (s ItineraryService) AddPort(ctx context.Context, tripID, portID int64, arrival, departure string) (models.TripPort, error) {
	arrival, departure, err := normalizeTimes(arrival, departure)
	if err != nil {
		return models.TripPort{}, err
	}

	var added models.TripPort
	err = intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := (repositories.TripRepository{DB: tx}).Lock(ctx, tripID); err != nil {
			return err
		}
		ok, err := repositories.PortRepository{DB: tx}.Exists(ctx, portID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFoundError{Resource: "port"}
		}

		tripPorts := repositories.TripPortRepository{DB: tx}
		ports, err := tripPorts.ListByTrip(ctx, tripID)
		if err != nil {
			return err
		}
		maxSeq := 0
		for _, p := range ports {
			maxSeq = max(maxSeq, p.Sequence)
		}

		added = models.TripPort{
			TripID:        tripID,
			PortID:        portID,
			Sequence:      maxSeq + 1,
			ArrivalTime:   arrival,
			DepartureTime: departure,
		}
		added.ID, err = tripPorts.Insert(ctx, added)
		if err != nil {
			return err
		}
		return syncEndpoints(ctx, tx, tripID, append(ports, added))
	})
	if err != nil {
		return models.TripPort{}, err
	}
	utils.LogEvent(s.RequestID, "itinerary", "add_port", fmt.Sprintf("trip_id=%d port_id=%d seq=%d", tripID, portID, added.Sequence))
	return added, nil
}

// ReorderPorts applies a full permutation of the trip's stops. The order must
// name every stop of the trip once and use sequences 1..N.
func (s ItineraryService) ReorderPorts(ctx context.Context, tripID int64, order []models.PortOrder) error {
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := (repositories.TripRepository{DB: tx}).Lock(ctx, tripID); err != nil {
			return err
		}
		tripPorts := repositories.TripPortRepository{DB: tx}
		ports, err := tripPorts.ListByTrip(ctx, tripID)
		if err != nil {
			return err
		}
		reordered, err := applyOrder(ports, order)
		if err != nil {
			return err
		}
		for _, p := range reordered {
			if err := tripPorts.SetSequence(ctx, p.ID, p.Sequence); err != nil {
				return err
			}
		}
		return syncEndpoints(ctx, tx, tripID, reordered)
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "itinerary", "reorder", fmt.Sprintf("trip_id=%d ports=%d", tripID, len(order)))
	return nil
}

// applyOrder validates order against ports and returns the ports sorted by
// their new sequence.
func applyOrder(ports []models.TripPort, order []models.PortOrder) ([]models.TripPort, error) {
	if len(order) != len(ports) {
		return nil, domain.ValidationError{Field: "ports", Msg: fmt.Sprintf("expected %d ports, got %d", len(ports), len(order))}
	}
	byID := make(map[int64]models.TripPort, len(ports))
	for _, p := range ports {
		byID[p.ID] = p
	}
	out := make([]models.TripPort, len(order))
	seen := make(map[int64]bool, len(order))
	for _, o := range order {
		p, ok := byID[o.TripPortID]
		if !ok {
			return nil, domain.ValidationError{Field: "ports", Msg: fmt.Sprintf("trip port %d does not belong to this trip", o.TripPortID)}
		}
		if seen[o.TripPortID] {
			return nil, domain.ValidationError{Field: "ports", Msg: fmt.Sprintf("trip port %d listed twice", o.TripPortID)}
		}
		if o.Sequence < 1 || o.Sequence > len(order) || out[o.Sequence-1].ID != 0 {
			return nil, domain.ValidationError{Field: "ports", Msg: fmt.Sprintf("sequence numbers must be 1..%d without gaps", len(order))}
		}
		seen[o.TripPortID] = true
		p.Sequence = o.Sequence
		out[o.Sequence-1] = p
	}
	return out, nil
}

func (s ItineraryService) UpdateTimes(ctx context.Context, tripPortID int64, arrival, departure string) error {
	arrival, departure, err := normalizeTimes(arrival, departure)
	if err != nil {
		return err
	}
	n, err := repositories.TripPortRepository{DB: s.DB}.SetTimes(ctx, tripPortID, arrival, departure)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "trip port"}
	}
	utils.LogEvent(s.RequestID, "itinerary", "update_times", fmt.Sprintf("trip_port_id=%d", tripPortID))
	return nil
}

// DeletePort removes one stop and closes the gap it leaves in the sequence.
func (s ItineraryService) DeletePort(ctx context.Context, tripID, tripPortID int64) error {
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := (repositories.TripRepository{DB: tx}).Lock(ctx, tripID); err != nil {
			return err
		}
		tripPorts := repositories.TripPortRepository{DB: tx}
		n, err := tripPorts.Delete(ctx, tripID, tripPortID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFoundError{Resource: "trip port"}
		}

		remaining, err := tripPorts.ListByTrip(ctx, tripID)
		if err != nil {
			return err
		}
		for i := range remaining {
			if remaining[i].Sequence == i+1 {
				continue
			}
			remaining[i].Sequence = i + 1
			if err := tripPorts.SetSequence(ctx, remaining[i].ID, i+1); err != nil {
				return err
			}
		}
		return syncEndpoints(ctx, tx, tripID, remaining)
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "itinerary", "delete_port", fmt.Sprintf("trip_id=%d trip_port_id=%d", tripID, tripPortID))
	return nil
}

// syncEndpoints points the trip at its first and last stop; ordered must be
// sorted by sequence. A trip without stops keeps its current endpoints.
func syncEndpoints(ctx context.Context, tx *sql.Tx, tripID int64, ordered []models.TripPort) error {
	if len(ordered) == 0 {
		return nil
	}
	first, last := ordered[0], ordered[len(ordered)-1]
	return repositories.TripRepository{DB: tx}.SetEndpoints(ctx, tripID, first.PortID, last.PortID)
}
