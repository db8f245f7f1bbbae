// Package graphics interprets content-stream operations to recover the
// vector drawing primitives of a page: stroked and filled polylines,
// rectangles, and the placement rectangles of raster XObjects.
//
// All output geometry is in device space (page coordinates), with the
// current transformation matrix applied. Bézier curves are flattened by
// uniform sampling so that arc-shaped primitives, such as door swings,
// survive as recognizable polylines rather than being chorded away.
package graphics
