package guidance

import (
	"github.com/lintang-b-s/compassx/pkg/util"
)

type Turn uint8

const (
	NO_TURN Turn = iota
	SLIGHT_RIGHT
	SLIGHT_LEFT
	RIGHT
	LEFT
	SHARP_RIGHT
	SHARP_LEFT
	U_TURN
)

var turnNames = [...]string{
	NO_TURN:      "no_turn",
	SLIGHT_RIGHT: "slight_right",
	SLIGHT_LEFT:  "slight_left",
	RIGHT:        "right",
	LEFT:         "left",
	SHARP_RIGHT:  "sharp_right",
	SHARP_LEFT:   "sharp_left",
	U_TURN:       "u_turn",
}

func (t Turn) String() string {
	if int(t) < len(turnNames) {
		return turnNames[t]
	}
	return "unknown"
}

func ParseTurn(s string) (Turn, error) {
	for t, name := range turnNames {
		if name == s {
			return Turn(t), nil
		}
	}
	return 0, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown turn %q", s)
}

func AllTurns() []Turn {
	return []Turn{NO_TURN, SLIGHT_RIGHT, SLIGHT_LEFT, RIGHT, LEFT, SHARP_RIGHT, SHARP_LEFT, U_TURN}
}

/*
ClassifyTurn. bins the signed bearing delta (degrees, right positive) into a turn category:

	[-180,-160] u-turn       [20,44]   slight right
	[-159,-135] sharp left   [45,134]  right
	[-134,-45]  left         [135,159] sharp right
	[-44,-20]   slight left  [160,180] u-turn
	[-19,19]    no turn
*/
func ClassifyTurn(angle int) (Turn, error) {
	switch {
	case angle < -180 || angle > 180:
		return 0, util.WrapErrorf(nil, util.ErrBadParamInput, "turn angle %d out of range of -180 to 180", angle)
	case angle <= -160:
		return U_TURN, nil
	case angle <= -135:
		return SHARP_LEFT, nil
	case angle <= -45:
		return LEFT, nil
	case angle <= -20:
		return SLIGHT_LEFT, nil
	case angle <= 19:
		return NO_TURN, nil
	case angle <= 44:
		return SLIGHT_RIGHT, nil
	case angle <= 134:
		return RIGHT, nil
	case angle <= 159:
		return SHARP_RIGHT, nil
	default:
		return U_TURN, nil
	}
}
