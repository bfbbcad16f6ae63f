package womclient

type competitionDetails struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Metric         string          `json:"metric"`
	Participations []participation `json:"participations"`
}

type participation struct {
	PlayerID int      `json:"playerId"`
	Player   player   `json:"player"`
	Progress progress `json:"progress"`
}

type player struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type progress struct {
	Start  int64 `json:"start"`
	End    int64 `json:"end"`
	Gained int64 `json:"gained"`
}

type updateAllRequest struct {
	VerificationCode string `json:"verificationCode"`
}

type updateAllResponse struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}
