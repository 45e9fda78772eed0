// Package sheets implements the row store against the Google Sheets
// registration spreadsheet. Every operation talks to the live sheet; rows are
// never cached, so a lookup always reflects the latest edits made by the
// registration team.
package sheets

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ecell-iiitr/gatepass/internal/api/metrics"
	"github.com/ecell-iiitr/gatepass/internal/core/domain"
)

// Config captures the settings required to reach the registration sheet.
type Config struct {
	SpreadsheetID   string
	CredentialsFile string
	SheetName       string
}

// Store reads and writes participant rows on the first worksheet of the
// registration spreadsheet, authenticated as a service account.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	sheetName     string
}

// New builds the Sheets client from a service-account credentials file and
// returns the store. Connectivity is not verified here; the first call does.
func New(ctx context.Context, cfg Config) (*Store, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}

	return &Store{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}, nil
}

// LoadAll fetches every row below the header, in sheet order.
func (s *Store) LoadAll(ctx context.Context) ([]domain.Participant, error) {
	timer := prometheus.NewTimer(metrics.StoreRequestDuration.WithLabelValues("load_all"))
	defer timer.ObserveDuration()

	header, rows, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	participants := make([]domain.Participant, 0, len(rows))
	for i, row := range rows {
		// +2: 1-based rows, header occupies row 1.
		participants = append(participants, participantFromRow(header, row, i+2))
	}
	return participants, nil
}

// FindByID scans the sheet top to bottom and returns the first row whose
// payment identifier matches after trimming and lowercasing. Rows without a
// payment identifier are skipped.
func (s *Store) FindByID(ctx context.Context, id string) (*domain.Participant, error) {
	timer := prometheus.NewTimer(metrics.StoreRequestDuration.WithLabelValues("find_by_id"))
	defer timer.ObserveDuration()

	header, rows, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	want := domain.NormalizeID(id)
	for i, row := range rows {
		p := participantFromRow(header, row, i+2)
		if p.ID == "" {
			continue
		}
		if domain.NormalizeID(p.ID) == want {
			return &p, nil
		}
	}
	return nil, domain.ErrParticipantNotFound
}

// Save writes the three check-in columns of the row addressed by
// Participant.StoreRef in a single batch update. The descriptive columns are
// owned by the registration team and are never written back.
func (s *Store) Save(ctx context.Context, p *domain.Participant) error {
	timer := prometheus.NewTimer(metrics.StoreRequestDuration.WithLabelValues("save"))
	defer timer.ObserveDuration()

	rowNum, err := strconv.Atoi(p.StoreRef)
	if err != nil || rowNum < 2 {
		return fmt.Errorf("save: participant %q has no sheet row reference", p.ID)
	}

	header, err := s.fetchHeader(ctx)
	if err != nil {
		return err
	}

	data := make([]*sheetsapi.ValueRange, 0, 3)
	for _, cell := range []struct {
		col   string
		value string
	}{
		{colCheckInStatus, string(p.CheckInStatus)},
		{colCheckedInBy, p.CheckedInBy},
		{colTimestamp, p.Timestamp},
	} {
		idx, ok := header[cell.col]
		if !ok {
			return fmt.Errorf("save: sheet is missing the %q column", cell.col)
		}
		data = append(data, &sheetsapi.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", s.sheetName, columnLetter(idx), rowNum),
			Values: [][]interface{}{{cell.value}},
		})
	}

	req := &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	if _, err := s.svc.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: save row %d: %v", domain.ErrStoreUnavailable, rowNum, err)
	}
	return nil
}

// Ping verifies the spreadsheet is reachable, for the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// fetch reads the whole sheet and splits off the header row.
func (s *Store) fetch(ctx context.Context) (headerIndex, [][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: load rows: %v", domain.ErrStoreUnavailable, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil, fmt.Errorf("%w: sheet has no header row", domain.ErrStoreUnavailable)
	}
	return indexHeader(resp.Values[0]), resp.Values[1:], nil
}

func (s *Store) fetchHeader(ctx context.Context) (headerIndex, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, fmt.Sprintf("%s!1:1", s.sheetName)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: load header: %v", domain.ErrStoreUnavailable, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("%w: sheet has no header row", domain.ErrStoreUnavailable)
	}
	return indexHeader(resp.Values[0]), nil
}
