// Package scene holds the AR composition state driven by timeline events.
//
// A Canvas consumes the same event stream whether it arrives from live
// capture or from the playback engine: gestures steer a pointer anchored to
// the index fingertip, and each completed generation drops a Placement at
// the current pointer position. Snapshot exposes a comparable view so a
// replayed session can be checked against the live composition it recorded.
package scene
