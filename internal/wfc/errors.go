package wfc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTrainingData is the parent of every training input failure.
	ErrInvalidTrainingData = errors.New("wfc: invalid training data")
	// ErrEmptyGrid indicates the training grid has no rows or no columns.
	ErrEmptyGrid = fmt.Errorf("%w: grid must have at least one row and one column", ErrInvalidTrainingData)
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = fmt.Errorf("%w: all rows must have the same length", ErrInvalidTrainingData)
	// ErrNegativeTile indicates a negative id, which is reserved for sentinels.
	ErrNegativeTile = fmt.Errorf("%w: tile ids must be non-negative", ErrInvalidTrainingData)

	// ErrInvalidDimensions indicates a non-positive output width or height.
	ErrInvalidDimensions = errors.New("wfc: output dimensions must be positive")
	// ErrNilModel indicates a generator was built without a model.
	ErrNilModel = errors.New("wfc: model is required")
	// ErrNilSource indicates a generator was built without a random source.
	ErrNilSource = errors.New("wfc: random source is required")
	// ErrFallbackTrained indicates the fallback id collides with a trained tile.
	ErrFallbackTrained = errors.New("wfc: fallback tile must not be a trained tile")
)
