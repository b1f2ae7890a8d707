package entity

const (
	DefaultPlayerXName = "Player X"
	DefaultPlayerOName = "Player O"
)

// PlayerName returns the display name for mark, falling back to "Player X"/"Player O"
// for sessions saved without names.
func (that *Session) PlayerName(mark string) string {
	switch mark {
	case PlayerX:
		if that.PlayerX != "" {
			return that.PlayerX
		}
		return DefaultPlayerXName
	case PlayerO:
		if that.PlayerO != "" {
			return that.PlayerO
		}
		return DefaultPlayerOName
	default:
		return ""
	}
}
