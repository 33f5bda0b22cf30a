// Package style provides the theme: colours, text styles and the spacing
// constant that keeps the cursor away from the window edge.
//
// Cell styles are resolved by layering: the base text style, then the
// selection highlight, then the cursor.
package style
