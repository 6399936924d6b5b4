package types

// AppKey identifies one of the fixed desktop apps
type AppKey string

const (
	AppTerminal        AppKey = "terminal"
	AppBlackMarket     AppKey = "black-market"
	AppIndex           AppKey = "index"
	AppProfile         AppKey = "profile"
	AppPvPArena        AppKey = "pvp-arena"
	AppBlockchain      AppKey = "blockchain"
	AppSignalNetwork   AppKey = "signal-network"
	AppQuestMenu       AppKey = "quest-menu"
	AppDaemonLab       AppKey = "daemon-lab"
	AppArchive         AppKey = "archive"
	AppOperatorConsole AppKey = "operator-console"
)

// AppDescriptor is a static launcher entry
type AppDescriptor struct {
	Key     AppKey `json:"key"`
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	Summary string `json:"summary"`
}

// WindowPosition represents window position on screen
type WindowPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WindowSize represents window dimensions
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Window is the geometry and visibility of one open app
type Window struct {
	App       AppKey         `json:"app"`
	Position  WindowPosition `json:"position"`
	Size      WindowSize     `json:"size"`
	Minimized bool           `json:"minimized"`
}

// WindowView is a window as drawn: Z is its index in render order
type WindowView struct {
	Window
	Z       int  `json:"z"`
	Focused bool `json:"focused"`
}

// Viewport is the drawable area reported by the client at call time
type Viewport struct {
	Width  int `json:"width" binding:"gte=0"`
	Height int `json:"height" binding:"gte=0"`
}
