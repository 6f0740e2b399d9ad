package app

// Screen represents the current view in the application
type Screen int

const (
	ScreenList Screen = iota
	ScreenAddPR
	ScreenError
)

func (s Screen) String() string {
	names := []string{
		"List",
		"AddPR",
		"Error",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}
