package models

type SportType string

const (
	SportBasketball SportType = "basketball"
	SportFutsal     SportType = "futsal"
	SportVolleyball SportType = "volleyball"
	SportHandball   SportType = "handball"
)

// SuspensionRules holds the card thresholds that put an athlete out of the
// next games of a competition.
type SuspensionRules struct {
	YellowCards int `json:"yellow_cards"`
	RedCard     int `json:"red_card"`
}

// VolleyballRules holds the set parameters specific to volleyball.
type VolleyballRules struct {
	SetsToWin         int `json:"sets_to_win"`
	PointsPerSet      int `json:"points_per_set"`
	DecidingSetPoints int `json:"deciding_set_points"`
}

// SportConfig describes one supported sport. CardBased sports track
// disciplinary records; the others do not.
type SportConfig struct {
	Name            string           `json:"name"`
	MaxPlayersCourt int              `json:"max_players_court"`
	MaxTeamSize     int              `json:"max_team_size"`
	Positions       []string         `json:"positions"`
	CardBased       bool             `json:"card_based"`
	Suspension      *SuspensionRules `json:"suspension_rules,omitempty"`
	Volleyball      *VolleyballRules `json:"volleyball_rules,omitempty"`
}

var sportsConfig = map[SportType]SportConfig{
	SportBasketball: {
		Name:            "Basquete",
		MaxPlayersCourt: 5,
		MaxTeamSize:     20,
		Positions:       []string{"Armador", "Ala-Armador", "Ala", "Ala-Pivô", "Pivô"},
	},
	SportFutsal: {
		Name:            "Futsal",
		MaxPlayersCourt: 5,
		MaxTeamSize:     20,
		Positions:       []string{"Goleiro", "Fixo", "Ala", "Pivô"},
		CardBased:       true,
		Suspension:      &SuspensionRules{YellowCards: 2, RedCard: 1},
	},
	SportVolleyball: {
		Name:            "Vôlei",
		MaxPlayersCourt: 6,
		MaxTeamSize:     20,
		Positions:       []string{"Levantador", "Oposto", "Central", "Ponteiro", "Líbero"},
		Volleyball:      &VolleyballRules{SetsToWin: 3, PointsPerSet: 25, DecidingSetPoints: 15},
	},
	SportHandball: {
		Name:            "Handebol",
		MaxPlayersCourt: 7,
		MaxTeamSize:     20,
		Positions:       []string{"Goleiro", "Armador Central", "Armador Lateral", "Meia", "Ponta", "Pivô"},
		CardBased:       true,
		Suspension:      &SuspensionRules{YellowCards: 2, RedCard: 1},
	},
}

// ConfigForSport returns the configuration of a sport, or false when the
// sport is not supported.
func ConfigForSport(sport SportType) (SportConfig, bool) {
	cfg, ok := sportsConfig[sport]
	return cfg, ok
}

func (s SportType) Valid() bool {
	_, ok := sportsConfig[s]
	return ok
}
