package quaternion

import "github.com/pkg/errors"

// Valid Euler conversion directions.
const (
	DirectionLab2Crystal = "lab2crystal"
	DirectionCrystal2Lab = "crystal2lab"
	DirectionMTEX        = "mtex"
)

// ErrInvalidDirection is returned for an unknown Euler conversion direction.
var ErrInvalidDirection = errors.New("invalid direction")

func newInvalidDirectionError(direction string) error {
	return errors.Wrapf(ErrInvalidDirection, "%q is not one of %v", direction,
		[]string{DirectionLab2Crystal, DirectionCrystal2Lab})
}
