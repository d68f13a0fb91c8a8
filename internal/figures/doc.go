// Package figures renders one frequency figure per class label.
//
// Rendering sits behind the Renderer interface. The default CloudRenderer
// draws a word cloud of the top tokens with gonum/plot; BarRenderer draws a
// bar chart instead. GenerateIfEmpty only renders into an empty or missing
// directory so hand-curated figures are never overwritten.
package figures
