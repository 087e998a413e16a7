// Package core provides the value types shared by the renderer packages:
// colours, styles, cells, and the integer geometry (points, rectangles and
// polygons) used to describe grid cells and selection outlines.
// This package breaks import cycles between renderer packages and the backend.
package core
