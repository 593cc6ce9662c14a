package ir

// Session identifies one engine lifetime in the action journal.
type Session struct {
	ID            string    `json:"id"`
	AngleMode     AngleMode `json:"angle_mode"`
	EngineVersion string    `json:"engine_version"`
	IRVersion     string    `json:"ir_version"`
}

// JournalRecord is one dispatched action and the snapshot it produced.
//
// ID is content-addressed (see ActionID). StateHash covers every snapshot
// field except Status, so replays can be compared without wall-clock timing.
type JournalRecord struct {
	ID         string   `json:"id"`
	SessionID  string   `json:"session_id"`
	Seq        int64    `json:"seq"`
	Action     Action   `json:"action"`
	Tokens     []string `json:"tokens"`
	Expression string   `json:"expression"`
	Result     string   `json:"result"`
	Status     string   `json:"status"`
	StateHash  string   `json:"state_hash"`
}
