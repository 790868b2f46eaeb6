package request

// AddPointRequest is the request body for recording a point
type AddPointRequest struct {
	Team   string `json:"team"`
	Scorer string `json:"scorer"`
	Assist string `json:"assist"`
}

// EditPointRequest is the request body for amending a recorded point
type EditPointRequest struct {
	Scorer string `json:"scorer"`
	Assist string `json:"assist"`
}

// SetTeamsRequest is the request body for configuring the two team slots
type SetTeamsRequest struct {
	TeamAName   string `json:"team_a_name"`
	TeamBName   string `json:"team_b_name"`
	TeamARoster string `json:"team_a_roster"`
	TeamBRoster string `json:"team_b_roster"`
}

// SetPossessionRequest is the request body for choosing the starting line
type SetPossessionRequest struct {
	Start string `json:"start"`
}

// SetClockLabelRequest is the request body for the scoreboard clock label
type SetClockLabelRequest struct {
	Label string `json:"label"`
}

// RestoreDecisionRequest is the request body resolving a pending restore
type RestoreDecisionRequest struct {
	Keep bool `json:"keep"`
}

// ResetTimerRequest is the request body for resetting a timer.
// Minutes applies to the match timer, Seconds to the interval timer.
type ResetTimerRequest struct {
	Minutes int `json:"minutes,omitempty"`
	Seconds int `json:"seconds,omitempty"`
}
