// Package heatmap implements the client side of the outlet power heat
// map viewer. It polls outlet and sensor resources over the management
// API with HTTP Basic credentials and renders a 24x2 terminal grid
// where each tile is coloured by live outlet power on a blue to yellow
// to red scale.
//
// The package is split along the same lines as the viewer binary:
// Client fetches, Scale picks the colour range, Render draws. None of
// it touches the simulator process directly; everything goes through
// the public API so the viewer exercises the same surface as any other
// management client.
package heatmap
