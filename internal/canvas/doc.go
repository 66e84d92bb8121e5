// Package canvas orchestrates a drawing session.
//
// A Board owns the element document and its undo history and turns pointer
// and keyboard input into element operations. Pointer events arrive in
// screen coordinates and are mapped through the board's Viewport, so hit
// tests, new elements and drags all work in document space while hit
// tolerances stay constant on screen.
//
// # Interaction States
//
// Every pointer-down enters one action, which lasts until pointer-up:
//
//	none ─┬─ panning   middle button, or space held
//	      ├─ drawing   line, rectangle, pencil, capture tools
//	      ├─ moving    selection tool on an element body
//	      ├─ resizing  selection tool on a handle
//	      ├─ erasing   eraser tool
//	      └─ writing   text tool; persists until CommitText
//
// # History
//
// Starting a gesture commits a new snapshot and every drag update
// overwrites it, so one gesture is one undo step. Lines, rectangles and
// captures are canonicalized on release and the canonical shape overwrites
// the same snapshot.
//
// # Idle Detection
//
// Drawing activity resets an IdleTimer. Once input has been quiet for the
// configured delay, the board rasterizes its elements, detects regions and
// hands them to the OnRegions callback.
package canvas
