package apperror

import "errors"

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrGameFinished     = errors.New("game is already finished")
)
