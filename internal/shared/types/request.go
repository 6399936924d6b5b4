package types

// TerminalRequest submits one line of terminal input
type TerminalRequest struct {
	Line string `json:"line"`
}

// PointerRequest carries pointer coordinates for drag operations. App is
// only read when a drag begins.
type PointerRequest struct {
	App AppKey `json:"app,omitempty"`
	X   int    `json:"x"`
	Y   int    `json:"y"`
}

// WSMessage represents a WebSocket message from the client
type WSMessage struct {
	Type     string    `json:"type"`
	App      AppKey    `json:"app,omitempty"`
	X        int       `json:"x,omitempty"`
	Y        int       `json:"y,omitempty"`
	Line     string    `json:"line,omitempty"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// CommandResult summarises what a terminal input did
type CommandResult struct {
	Kind        string `json:"kind"`
	CommandID   string `json:"command_id,omitempty"`
	XPGained    int    `json:"xp_gained,omitempty"`
	LevelsUp    int    `json:"levels_up,omitempty"`
	RemainingMs int64  `json:"remaining_ms,omitempty"`
}

// WSReply is a server to client WebSocket message
type WSReply struct {
	Type     string           `json:"type"`
	Snapshot *SessionSnapshot `json:"snapshot,omitempty"`
	Result   *CommandResult   `json:"result,omitempty"`
	Error    string           `json:"error,omitempty"`
}
