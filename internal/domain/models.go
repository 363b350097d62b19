package domain

// RealTeam es el equipo profesional que un atleta representa.
type RealTeam struct {
	ID     int64
	Name   string
	Abbrev string
	Region string
}

type Athlete struct {
	ID         int64
	Name       string
	RealTeamID *int64
	// Se llena sólo en consultas con join.
	RealTeamAbbrev string
}

// SameRealTeam reporta si ambos atletas tienen equipo y es el mismo.
func (a Athlete) SameRealTeam(b Athlete) bool {
	return a.RealTeamID != nil && b.RealTeamID != nil && *a.RealTeamID == *b.RealTeamID
}

type FantasyTeam struct {
	ID      int64
	OwnerID string
	Name    string
	Abbrev  string
	Points  float64
}

// Owner vincula un usuario de Discord con su fantasy team.
type Owner struct {
	DiscordID     string
	FantasyTeamID *int64
}

// Slot es la ubicación de un atleta en un fantasy team.
type Slot struct {
	FantasyTeamID int64
	AthleteID     int64
	Position      int
	Athlete       Athlete
}

type Event struct {
	ID   int64
	Name string
}

// StatLine es el rendimiento de un atleta en un game (mapa).
type StatLine struct {
	ACS        float64
	Kills      int
	Deaths     int
	Assists    int
	TwoKills   int
	ThreeKills int
	FourKills  int
	FiveKills  int
	ClutchV2   int
	ClutchV3   int
	ClutchV4   int
	ClutchV5   int
}

type MatchResult struct {
	ID        int64
	MatchID   int64
	GameID    int64
	EventID   *int64
	AthleteID int64
	Map       string
	Agent     string
	Stats     StatLine
}

// UploadReport resume lo que se guardó al subir un match.
type UploadReport struct {
	MatchID  int64
	Games    int
	Inserted int
	Epoch    int64
	Results  []MatchResult
}
