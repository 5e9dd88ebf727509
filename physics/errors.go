package physics

import "errors"

var (
	// ErrUnknownGeomKind is returned when a geometry kind is not supported by the space
	ErrUnknownGeomKind = errors.New("unknown geometry type")
	// ErrGeomParams is returned when a geometry is created with the wrong parameter count or non-positive size
	ErrGeomParams = errors.New("invalid geometry parameters")
)
