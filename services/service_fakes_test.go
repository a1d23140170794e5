package services

import (
	"context"
	"sort"
	"time"

	"github.com/sgce/sports-competition-system/models"
	"github.com/sgce/sports-competition-system/repositories"
)

// In-memory repository fakes. They keep just enough state for the service
// tests and return the same sentinel errors as the postgres
// implementations.

type fakeCompetitionRepo struct {
	nextID       int
	competitions map[int]*models.Competition
	due          []*models.Competition
}

func newFakeCompetitionRepo() *fakeCompetitionRepo {
	return &fakeCompetitionRepo{nextID: 1, competitions: make(map[int]*models.Competition)}
}

func (r *fakeCompetitionRepo) Create(_ context.Context, competition *models.Competition) error {
	for _, existing := range r.competitions {
		if existing.Name == competition.Name {
			return repositories.ErrCompetitionNameConflict
		}
	}
	competition.ID = r.nextID
	r.nextID++
	competition.CreatedAt = time.Now()
	r.competitions[competition.ID] = competition
	return nil
}

func (r *fakeCompetitionRepo) GetByID(_ context.Context, id int) (*models.Competition, error) {
	competition, ok := r.competitions[id]
	if !ok {
		return nil, repositories.ErrCompetitionNotFound
	}
	copied := *competition
	return &copied, nil
}

func (r *fakeCompetitionRepo) List(_ context.Context, status *models.CompetitionStatus) ([]*models.Competition, error) {
	var out []*models.Competition
	for _, competition := range r.competitions {
		if status == nil || competition.Status == *status {
			out = append(out, competition)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCompetitionRepo) Update(_ context.Context, competition *models.Competition) error {
	if _, ok := r.competitions[competition.ID]; !ok {
		return repositories.ErrCompetitionNotFound
	}
	r.competitions[competition.ID] = competition
	return nil
}

func (r *fakeCompetitionRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.CompetitionStatus) error {
	competition, ok := r.competitions[id]
	if !ok {
		return repositories.ErrCompetitionNotFound
	}
	competition.Status = status
	return nil
}

func (r *fakeCompetitionRepo) Count(_ context.Context, status *models.CompetitionStatus) (int, error) {
	list, _ := r.List(context.Background(), status)
	return len(list), nil
}

func (r *fakeCompetitionRepo) ListDueForStatusChange(_ context.Context) ([]*models.Competition, error) {
	return r.due, nil
}

type fakeRegistrationRepo struct {
	nextID        int
	registrations []*models.TeamRegistration
	teams         map[int]*models.Team
	groupNames    map[int]string
}

func newFakeRegistrationRepo(teams map[int]*models.Team) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{nextID: 1, teams: teams, groupNames: make(map[int]string)}
}

func (r *fakeRegistrationRepo) Create(_ context.Context, registration *models.TeamRegistration) error {
	for _, existing := range r.registrations {
		if existing.CompetitionID == registration.CompetitionID && existing.TeamID == registration.TeamID {
			return repositories.ErrRegistrationConflict
		}
	}
	registration.ID = r.nextID
	r.nextID++
	registration.RegistrationDate = time.Now()
	r.registrations = append(r.registrations, registration)
	return nil
}

func (r *fakeRegistrationRepo) GetByCompetitionAndTeam(_ context.Context, competitionID, teamID int) (*models.TeamRegistration, error) {
	for _, registration := range r.registrations {
		if registration.CompetitionID == competitionID && registration.TeamID == teamID {
			return registration, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) ListByCompetition(_ context.Context, competitionID int, confirmedOnly bool) ([]*models.TeamRegistration, error) {
	var out []*models.TeamRegistration
	for _, registration := range r.registrations {
		if registration.CompetitionID != competitionID {
			continue
		}
		if confirmedOnly && !registration.IsConfirmed {
			continue
		}
		out = append(out, registration)
	}
	return out, nil
}

func (r *fakeRegistrationRepo) ListConfirmedTeams(_ context.Context, competitionID int) ([]*models.Team, error) {
	var out []*models.Team
	for _, registration := range r.registrations {
		if registration.CompetitionID == competitionID && registration.IsConfirmed {
			out = append(out, r.teams[registration.TeamID])
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) Confirm(_ context.Context, competitionID, teamID int) error {
	registration, err := r.GetByCompetitionAndTeam(context.Background(), competitionID, teamID)
	if err != nil {
		return err
	}
	registration.IsConfirmed = true
	return nil
}

func (r *fakeRegistrationRepo) UpdateGroupName(_ context.Context, _ repositories.SQLExecutor, competitionID, teamID int, groupName string) error {
	registration, err := r.GetByCompetitionAndTeam(context.Background(), competitionID, teamID)
	if err != nil {
		return err
	}
	registration.GroupName = &groupName
	r.groupNames[teamID] = groupName
	return nil
}

func (r *fakeRegistrationRepo) Delete(_ context.Context, competitionID, teamID int) error {
	for i, registration := range r.registrations {
		if registration.CompetitionID == competitionID && registration.TeamID == teamID {
			r.registrations = append(r.registrations[:i], r.registrations[i+1:]...)
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (r *fakeTeamRepo) ListBySport(_ context.Context, sport *models.SportType) ([]*models.Team, error) {
	var out []*models.Team
	for _, team := range r.teams {
		if sport == nil || team.Sport == *sport {
			out = append(out, team)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) Count(_ context.Context) (int, error) {
	return len(r.teams), nil
}

type fakeGameRepo struct {
	nextID int
	games  []*models.Game
}

func (r *fakeGameRepo) Create(_ context.Context, _ repositories.SQLExecutor, game *models.Game) error {
	r.nextID++
	game.ID = r.nextID
	r.games = append(r.games, game)
	return nil
}

func (r *fakeGameRepo) GetByID(_ context.Context, id int) (*models.Game, error) {
	for _, game := range r.games {
		if game.ID == id {
			copied := *game
			return &copied, nil
		}
	}
	return nil, repositories.ErrGameNotFound
}

func (r *fakeGameRepo) ListByCompetition(_ context.Context, competitionID int, round *int, status *models.GameStatus) ([]*models.Game, error) {
	var out []*models.Game
	for _, game := range r.games {
		if game.CompetitionID != competitionID {
			continue
		}
		if round != nil && game.RoundNumber != *round {
			continue
		}
		if status != nil && game.Status != *status {
			continue
		}
		out = append(out, game)
	}
	return out, nil
}

func (r *fakeGameRepo) UpdateResult(_ context.Context, _ repositories.SQLExecutor, id int, homeScore, awayScore, homeSets, awaySets int, status models.GameStatus) error {
	for _, game := range r.games {
		if game.ID == id {
			game.HomeScore = &homeScore
			game.AwayScore = &awayScore
			game.HomeSets = homeSets
			game.AwaySets = awaySets
			game.Status = status
			return nil
		}
	}
	return repositories.ErrGameNotFound
}

func (r *fakeGameRepo) UpdateStatus(_ context.Context, id int, status models.GameStatus, observations string) error {
	for _, game := range r.games {
		if game.ID == id {
			game.Status = status
			game.Observations = observations
			return nil
		}
	}
	return repositories.ErrGameNotFound
}

func (r *fakeGameRepo) UpdateSchedule(_ context.Context, id int, updated *models.Game) error {
	for _, game := range r.games {
		if game.ID == id {
			game.VenueID = updated.VenueID
			game.GameDate = updated.GameDate
			game.RefereeName = updated.RefereeName
			return nil
		}
	}
	return repositories.ErrGameNotFound
}

func (r *fakeGameRepo) ListUpcoming(_ context.Context, limit int) ([]*models.Game, error) {
	if limit > len(r.games) {
		limit = len(r.games)
	}
	return r.games[:limit], nil
}

func (r *fakeGameRepo) ListRecent(_ context.Context, limit int) ([]*models.Game, error) {
	if limit > len(r.games) {
		limit = len(r.games)
	}
	return r.games[:limit], nil
}

func (r *fakeGameRepo) Count(_ context.Context) (int, error) {
	return len(r.games), nil
}

type fakeStandingRepo struct {
	byCompetition map[int][]*models.Standing
	replaceCalls  int
}

func newFakeStandingRepo() *fakeStandingRepo {
	return &fakeStandingRepo{byCompetition: make(map[int][]*models.Standing)}
}

func (r *fakeStandingRepo) ReplaceForCompetition(_ context.Context, _ repositories.SQLExecutor, competitionID int, standings []*models.Standing) error {
	r.replaceCalls++
	r.byCompetition[competitionID] = standings
	return nil
}

func (r *fakeStandingRepo) ListByCompetition(_ context.Context, competitionID int) ([]*models.Standing, error) {
	return r.byCompetition[competitionID], nil
}

func (r *fakeStandingRepo) DeleteByCompetition(_ context.Context, _ repositories.SQLExecutor, competitionID int) error {
	delete(r.byCompetition, competitionID)
	return nil
}

type fakePlayerRepo struct {
	players map[int]*models.Player
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	player.ID = len(r.players) + 1
	r.players[player.ID] = player
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return player, nil
}

func (r *fakePlayerRepo) ListByTeam(_ context.Context, teamID int) ([]*models.Player, error) {
	var out []*models.Player
	for _, player := range r.players {
		if player.TeamID == teamID {
			out = append(out, player)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	r.players[player.ID] = player
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

type fakeDisciplineRepo struct {
	records map[[2]int]*models.DisciplinaryRecord
}

func newFakeDisciplineRepo() *fakeDisciplineRepo {
	return &fakeDisciplineRepo{records: make(map[[2]int]*models.DisciplinaryRecord)}
}

func (r *fakeDisciplineRepo) GetOrCreate(_ context.Context, competitionID, playerID int) (*models.DisciplinaryRecord, error) {
	key := [2]int{competitionID, playerID}
	if record, ok := r.records[key]; ok {
		return record, nil
	}
	record := &models.DisciplinaryRecord{
		ID:            len(r.records) + 1,
		CompetitionID: competitionID,
		PlayerID:      playerID,
	}
	r.records[key] = record
	return record, nil
}

func (r *fakeDisciplineRepo) Update(_ context.Context, record *models.DisciplinaryRecord) error {
	r.records[[2]int{record.CompetitionID, record.PlayerID}] = record
	return nil
}

func (r *fakeDisciplineRepo) ListByCompetition(_ context.Context, competitionID int, suspendedOnly bool) ([]*models.DisciplinaryRecord, error) {
	var out []*models.DisciplinaryRecord
	for _, record := range r.records {
		if record.CompetitionID != competitionID {
			continue
		}
		if suspendedOnly && !record.Suspended {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}
