// Package player replays a [trace.Trace] one step at a time.
//
// A [Player] owns a cursor into one trace and moves it on demand
// ([Player.StepForward], [Player.StepBackward]) or on a timer
// ([Player.Play]). States:
//
//	Idle ──Play──▶ Playing ──Pause──▶ Paused
//	  │               │  ▲──Play────────┘
//	  │               └──last step──▶ Completed
//	  └──────────── Reset (from any state) ◀──┘
//
// # Timers
//
// At most one advance is scheduled at a time. Every schedule, pause, reset
// and completion bumps a generation counter, so a timer that fires after it
// was cancelled is ignored.
//
// # Thread Safety
//
// Player methods are safe to call from any goroutine. Observers and
// completion hooks are invoked without the player lock held and may call
// back into the player.
package player
