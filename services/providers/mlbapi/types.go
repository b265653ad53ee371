package mlbapi

// Raw response shapes for the Stats API v1 endpoints this client touches.
// Only the fields the parsers read are declared.

type scheduleResponse struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GamePk       int    `json:"gamePk"`
			GameDate     string `json:"gameDate"` // RFC3339, UTC
			OfficialDate string `json:"officialDate"`
			GameNumber   int    `json:"gameNumber"`
			DoubleHeader string `json:"doubleHeader"` // "N", "Y", "S"
			Status       struct {
				AbstractGameState string `json:"abstractGameState"`
				DetailedState     string `json:"detailedState"`
			} `json:"status"`
			Teams struct {
				Away scheduleTeam `json:"away"`
				Home scheduleTeam `json:"home"`
			} `json:"teams"`
			Venue struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"venue"`
		} `json:"games"`
	} `json:"dates"`
}

type scheduleTeam struct {
	Score        int  `json:"score"`
	IsWinner     bool `json:"isWinner"`
	LeagueRecord struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
	} `json:"leagueRecord"`
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	ProbablePitcher struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"probablePitcher"`
}

type boxscoreResponse struct {
	Teams struct {
		Away boxscoreTeam `json:"away"`
		Home boxscoreTeam `json:"home"`
	} `json:"teams"`
}

type boxscoreTeam struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	BattingOrder []int                     `json:"battingOrder"`
	Bench        []int                     `json:"bench"`
	Bullpen      []int                     `json:"bullpen"`
	Players      map[string]boxscorePlayer `json:"players"`
}

type boxscorePlayer struct {
	Person struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"person"`
	JerseyNumber string `json:"jerseyNumber"`
	Position     struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	BattingOrder string `json:"battingOrder"` // "100", "200", ...
	SeasonStats  struct {
		Batting  battingStats  `json:"batting"`
		Pitching pitchingStats `json:"pitching"`
	} `json:"seasonStats"`
}

// Stats API returns rate stats as strings ("3.21", ".301") and counting
// stats as numbers.
type battingStats struct {
	Avg       string `json:"avg"`
	Obp       string `json:"obp"`
	Slg       string `json:"slg"`
	Ops       string `json:"ops"`
	HomeRuns  int    `json:"homeRuns"`
	Rbi       int    `json:"rbi"`
	TotalBase int    `json:"totalBases"`
}

type pitchingStats struct {
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
	Era             string `json:"era"`
	Whip            string `json:"whip"`
	StrikeoutsPer9  string `json:"strikeoutsPer9Inn"`
	WalksPer9       string `json:"walksPer9Inn"`
	InningsPitched  string `json:"inningsPitched"`
	NumberOfPitches int    `json:"numberOfPitches"`
}

type peopleResponse struct {
	People []person `json:"people"`
}

type person struct {
	ID            int    `json:"id"`
	FullName      string `json:"fullName"`
	CurrentAge    int    `json:"currentAge"`
	PrimaryNumber string `json:"primaryNumber"`

	PrimaryPosition struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"primaryPosition"`

	CurrentTeam struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"currentTeam"`

	Stats []struct {
		Group struct {
			DisplayName string `json:"displayName"`
		} `json:"group"`
		Type struct {
			DisplayName string `json:"displayName"`
		} `json:"type"`
		Splits []struct {
			Season string `json:"season"`
			Stat   struct {
				battingStats
				pitchingStats
			} `json:"stat"`
		} `json:"splits"`
	} `json:"stats"`
}

type rosterResponse struct {
	Roster []struct {
		Person struct {
			ID       int    `json:"id"`
			FullName string `json:"fullName"`
		} `json:"person"`
		JerseyNumber string `json:"jerseyNumber"`
		Position     struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"position"`
		Status struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"status"`
	} `json:"roster"`
}

type transactionsResponse struct {
	Transactions []struct {
		Date        string `json:"date"`
		TypeDesc    string `json:"typeDesc"`
		Description string `json:"description"`
		ToTeam      struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"toTeam"`
	} `json:"transactions"`
}

type leadersResponse struct {
	LeagueLeaders []struct {
		LeaderCategory string `json:"leaderCategory"`
		Leaders        []struct {
			Rank   int    `json:"rank"`
			Value  string `json:"value"`
			Person struct {
				ID       int    `json:"id"`
				FullName string `json:"fullName"`
			} `json:"person"`
			Team struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"team"`
		} `json:"leaders"`
	} `json:"leagueLeaders"`
}

type standingsResponse struct {
	Records []struct {
		Division struct {
			ID int `json:"id"`
		} `json:"division"`
		TeamRecords []struct {
			Team struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"team"`
			Wins   int `json:"wins"`
			Losses int `json:"losses"`
		} `json:"teamRecords"`
	} `json:"records"`
}
