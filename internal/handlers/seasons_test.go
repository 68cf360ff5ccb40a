package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/swishlytics/swish-api/internal/models"
	"github.com/swishlytics/swish-api/internal/ranking"
)

func seasonFixture() []models.PlayerSeasonRecord {
	return []models.PlayerSeasonRecord{
		{PlayerID: "a", PlayerName: "Bam Adebayo", Season: "2024-25", Points: 18.1, Turnovers: 2.2,
			SwishScore: models.Float(4.5), PointsZScore: models.Float(0.4), TurnoversZScore: models.Float(0.1)},
		{PlayerID: "b", PlayerName: "Shai Gilgeous-Alexander", Season: "2024-25", Points: 32.7, Turnovers: 2.4,
			SwishScore: models.Float(13.9), PointsZScore: models.Float(2.9), TurnoversZScore: models.Float(0.3)},
		{PlayerID: "c", PlayerName: "Chris Paul", Season: "2024-25", Points: 8.8, Turnovers: 1.2,
			SwishScore: models.Float(2.0), PointsZScore: models.Float(-0.9), TurnoversZScore: models.Float(-0.8)},
	}
}

func decodeTable(t *testing.T, rr *httptest.ResponseRecorder) models.RankingTable {
	t.Helper()
	var table models.RankingTable
	if err := json.NewDecoder(rr.Body).Decode(&table); err != nil {
		t.Fatalf("Failed to decode table: %v", err)
	}
	return table
}

func rowIDs(table models.RankingTable) []string {
	ids := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		ids[i] = row.PlayerID
	}
	return ids
}

func TestListSeasons(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		h := newTestHandler(Config{SeasonStats: &MockSeasonStatsService{
			ListSeasonsFunc: func(ctx context.Context) ([]string, error) {
				return []string{"2024-25", "2023-24"}, nil
			},
		}})
		rr := httptest.NewRecorder()
		h.ListSeasons(rr, httptest.NewRequest("GET", "/api/v1/seasons", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rr.Code)
		}
		var seasons []string
		json.NewDecoder(rr.Body).Decode(&seasons)
		if len(seasons) != 2 || seasons[0] != "2024-25" {
			t.Errorf("seasons = %v", seasons)
		}
	})

	t.Run("Service error", func(t *testing.T) {
		h := newTestHandler(Config{SeasonStats: &MockSeasonStatsService{
			ListSeasonsFunc: func(ctx context.Context) ([]string, error) {
				return nil, errors.New("db down")
			},
		}})
		rr := httptest.NewRecorder()
		h.ListSeasons(rr, httptest.NewRequest("GET", "/api/v1/seasons", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", rr.Code)
		}
	})
}

func TestGetSeasonRankings_TableDriven(t *testing.T) {
	tests := []struct {
		name           string
		season         string
		query          string
		records        []models.PlayerSeasonRecord
		serviceErr     error
		expectedStatus int
		expectedOrder  []string
		expectedSort   *models.SortDirective
	}{
		{
			name:           "Rank order by default",
			season:         "2024-25",
			records:        seasonFixture(),
			expectedStatus: http.StatusOK,
			expectedOrder:  []string{"b", "a", "c"},
		},
		{
			name:           "Sort by points ascending",
			season:         "2024-25",
			query:          "?sort=points&dir=asc",
			records:        seasonFixture(),
			expectedStatus: http.StatusOK,
			expectedOrder:  []string{"c", "a", "b"},
			expectedSort:   &models.SortDirective{Field: "points", Direction: "asc"},
		},
		{
			name:           "Turnovers default to ascending",
			season:         "2024-25",
			query:          "?sort=turnovers",
			records:        seasonFixture(),
			expectedStatus: http.StatusOK,
			expectedOrder:  []string{"c", "a", "b"},
			expectedSort:   &models.SortDirective{Field: "turnovers", Direction: "asc"},
		},
		{
			name:           "Malformed season",
			season:         "2024-26",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown sort field",
			season:         "2024-25",
			query:          "?sort=shoe_size",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Dir without sort",
			season:         "2024-25",
			query:          "?dir=asc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown season",
			season:         "1990-91",
			records:        []models.PlayerSeasonRecord{},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Service error",
			season:         "2024-25",
			serviceErr:     errors.New("db down"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSeason string
			h := newTestHandler(Config{SeasonStats: &MockSeasonStatsService{
				GetSeasonStatsFunc: func(ctx context.Context, season string) ([]models.PlayerSeasonRecord, error) {
					gotSeason = season
					return tt.records, tt.serviceErr
				},
			}})

			req := httptest.NewRequest("GET", "/api/v1/seasons/"+tt.season+"/rankings"+tt.query, nil)
			req = withURLParams(req, "season", tt.season)
			rr := httptest.NewRecorder()
			h.GetSeasonRankings(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("Expected %d, got %d: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}
			if rr.Code != http.StatusOK {
				return
			}
			if gotSeason != tt.season {
				t.Errorf("service called with season %q", gotSeason)
			}

			table := decodeTable(t, rr)
			if got := rowIDs(table); !equalIDs(got, tt.expectedOrder) {
				t.Errorf("order = %v, want %v", got, tt.expectedOrder)
			}
			if tt.expectedSort == nil && table.Sort != nil {
				t.Errorf("sort = %+v, want none", *table.Sort)
			}
			if tt.expectedSort != nil && (table.Sort == nil || *table.Sort != *tt.expectedSort) {
				t.Errorf("sort = %v, want %+v", table.Sort, *tt.expectedSort)
			}
		})
	}
}

func TestGetSeasonRankings_RanksSurviveDisplaySort(t *testing.T) {
	h := newTestHandler(Config{SeasonStats: &MockSeasonStatsService{
		GetSeasonStatsFunc: func(ctx context.Context, season string) ([]models.PlayerSeasonRecord, error) {
			return seasonFixture(), nil
		},
	}})
	req := withURLParams(httptest.NewRequest("GET", "/api/v1/seasons/2024-25/rankings?sort=player_name", nil), "season", "2024-25")
	rr := httptest.NewRecorder()
	h.GetSeasonRankings(rr, req)

	table := decodeTable(t, rr)
	want := map[string]int{"a": 2, "b": 1, "c": 3}
	for _, row := range table.Rows {
		if row.Rank != want[row.PlayerID] {
			t.Errorf("player %s rank = %d, want %d", row.PlayerID, row.Rank, want[row.PlayerID])
		}
	}
	if len(table.Columns) != len(ranking.DefaultColumns) {
		t.Errorf("columns = %d, want %d", len(table.Columns), len(ranking.DefaultColumns))
	}
}

func TestGetSeasonRankings_HeatStyles(t *testing.T) {
	h := newTestHandler(Config{SeasonStats: &MockSeasonStatsService{
		GetSeasonStatsFunc: func(ctx context.Context, season string) ([]models.PlayerSeasonRecord, error) {
			return seasonFixture(), nil
		},
	}})
	req := withURLParams(httptest.NewRequest("GET", "/api/v1/seasons/2024-25/rankings", nil), "season", "2024-25")
	rr := httptest.NewRecorder()
	h.GetSeasonRankings(rr, req)

	table := decodeTable(t, rr)
	top := table.Rows[0]
	for _, cell := range top.Cells {
		switch cell.Key {
		case "points":
			if cell.Style == nil || cell.Style.Channel != ranking.ChannelGreen {
				t.Errorf("points style = %+v, want green", cell.Style)
			}
		case "turnovers":
			// Positive turnover z-score is bad
			if cell.Style == nil || cell.Style.Channel != ranking.ChannelRed {
				t.Errorf("turnovers style = %+v, want red", cell.Style)
			}
		case "player_name":
			if cell.Style != nil {
				t.Errorf("player_name should not be styled")
			}
		}
	}
}

func TestGetSeasonStats(t *testing.T) {
	h := newTestHandler(Config{SeasonStats: &MockSeasonStatsService{
		GetSeasonStatsFunc: func(ctx context.Context, season string) ([]models.PlayerSeasonRecord, error) {
			return seasonFixture(), nil
		},
	}})
	req := withURLParams(httptest.NewRequest("GET", "/api/v1/seasons/2024-25/stats", nil), "season", "2024-25")
	rr := httptest.NewRecorder()
	h.GetSeasonStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var ranked []models.RankedRecord
	if err := json.NewDecoder(rr.Body).Decode(&ranked); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(ranked) != 3 || ranked[0].PlayerID != "b" || ranked[0].Rank != 1 {
		t.Errorf("unexpected ranked records: %+v", ranked)
	}
}

func TestGetStatColumns(t *testing.T) {
	h := newTestHandler(Config{})
	rr := httptest.NewRecorder()
	h.GetStatColumns(rr, httptest.NewRequest("GET", "/api/v1/stats/columns", nil))

	var cols []models.TableColumn
	if err := json.NewDecoder(rr.Body).Decode(&cols); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(cols) != len(ranking.Catalog()) {
		t.Errorf("columns = %d, want %d", len(cols), len(ranking.Catalog()))
	}
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
