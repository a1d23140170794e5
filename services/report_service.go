package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/sgce/sports-competition-system/models"
	"github.com/sgce/sports-competition-system/repositories"
	"github.com/sgce/sports-competition-system/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StandingsReport describes one generated workbook stored in the object
// storage.
type StandingsReport struct {
	CompetitionID int    `json:"competition_id"`
	Key           string `json:"key"`
	URL           string `json:"url"`
}

type ReportService interface {
	// GenerateStandingsReport renders the current table of a competition
	// into an Excel workbook, stores it and returns its public location.
	GenerateStandingsReport(ctx context.Context, competitionID int) (*StandingsReport, error)
}

type reportService struct {
	competitionRepo  repositories.CompetitionRepository
	registrationRepo repositories.RegistrationRepository
	standingRepo     repositories.StandingRepository
	uploader         storage.FileUploader
	logger           *slog.Logger
}

func NewReportService(
	competitionRepo repositories.CompetitionRepository,
	registrationRepo repositories.RegistrationRepository,
	standingRepo repositories.StandingRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		competitionRepo:  competitionRepo,
		registrationRepo: registrationRepo,
		standingRepo:     standingRepo,
		uploader:         uploader,
		logger:           logger,
	}
}

func (s *reportService) GenerateStandingsReport(ctx context.Context, competitionID int) (*StandingsReport, error) {
	competition, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return nil, ErrCompetitionNotFound
	}

	standings, err := s.standingRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings for competition %d: %w", competitionID, err)
	}

	teams, err := s.registrationRepo.ListConfirmedTeams(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for competition %d: %w", competitionID, err)
	}
	teamNames := make(map[int]string, len(teams))
	for _, team := range teams {
		teamNames[team.ID] = team.Name
	}

	f, err := buildStandingsWorkbook(competition, standings, teamNames)
	if err != nil {
		return nil, fmt.Errorf("failed to build standings workbook: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize standings workbook: %w", err)
	}

	key := fmt.Sprintf("reports/competitions/%d/standings.xlsx", competitionID)
	result, err := s.uploader.Upload(ctx, key, xlsxContentType, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to upload standings report: %w", err)
	}

	s.logger.Info("standings report generated",
		"competition_id", competitionID, "key", result.Key, "rows", len(standings))
	return &StandingsReport{
		CompetitionID: competitionID,
		Key:           result.Key,
		URL:           result.Location,
	}, nil
}

var standingsHeaders = []string{
	"Pos", "Equipe", "J", "V", "E", "D", "GP", "GC", "SG", "Pts",
}

func buildStandingsWorkbook(competition *models.Competition, standings []*models.Standing, teamNames map[int]string) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	sheet := "Classificação"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}

	if err := f.SetCellValue(sheet, "A1", competition.Name); err != nil {
		return nil, err
	}
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Family: "Arial"},
	})
	if titleStyle != 0 {
		f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, h := range standingsHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
		if headerStyle != 0 {
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}
	}

	for rowIdx, standing := range standings {
		name, ok := teamNames[standing.TeamID]
		if !ok {
			name = fmt.Sprintf("Equipe %d", standing.TeamID)
		}
		values := []interface{}{
			standing.Position, name,
			standing.GamesPlayed, standing.Wins, standing.Draws, standing.Losses,
			standing.GoalsFor, standing.GoalsAgainst, standing.GoalDifference,
			standing.Points,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+4)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	f.SetColWidth(sheet, "B", "B", 30)
	f.DeleteSheet("Sheet1")
	return f, nil
}
