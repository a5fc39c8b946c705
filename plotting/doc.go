// Package plotting renders a fitted relaxation curve against its data.
//
// SaveFit draws the observations with their standard-deviation error bars and
// the back-calculated curve on a dense grid using gonum/plot; the image format
// follows the file extension (.png, .svg, .pdf, ...). The gnuplot preview lives
// in the gnuplot subpackage, which is only compiled with the gnuplot build tag.
package plotting
