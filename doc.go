// Package sprig is a retained-mode widget toolkit core for [Ebitengine].
//
// Sprig provides the actor tree, layout protocol, event dispatch, focus
// tracking and selection models that a game HUD or tool UI is built on, plus
// a small set of widgets exercising them.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	hud := sprig.NewHUD(640, 480)
//	// ... add actors ...
//	sprig.Run(hud, sprig.RunConfig{
//		Title: "My Tool", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call [HUD.Update]
// and [HUD.Draw] directly:
//
//	type Game struct{ hud *sprig.HUD }
//
//	func (g *Game) Update() error         { g.hud.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.hud.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Actors
//
// Every element is an [Actor]. Actors form a tree rooted at [HUD.Root].
// Positions are local to the parent, y grows downward, and transforms are
// pure translation: there is no rotation or scale on actors.
//
//	panel := sprig.NewActor("panel")
//	panel.SetBounds(20, 20, 200, 120)
//	hud.AddActor(panel)
//
// Children are drawn back to front and hit tested front to back. Use
// [Actor.SetZIndex], [Actor.ToFront] and [Actor.ToBack] to reorder them.
//
// # Layout
//
// Actors created with [NewWidget] carry a [Widget] that reports minimum,
// preferred and maximum sizes and positions its children in Layout. Layout
// is lazy: [Actor.Invalidate] marks an actor dirty and [Actor.Validate]
// lays it out again. [Actor.InvalidateHierarchy] also dirties every layout
// ancestor, which is what a widget does when its preferred size changes.
//
//	g := sprig.NewVerticalGroup()
//	g.Spacing = 4
//	g.AddActor(sprig.NewLabel("Name", nil).Actor)
//	g.AddActor(sprig.NewButton("OK", nil).Actor)
//	g.Actor.Pack()
//
// # Events
//
// [Actor.Fire] dispatches an [Event] in three phases: capture listeners from
// the root down to the target, the target's own listeners, then the
// ancestors' listeners back up to the root. Listeners can [Event.Stop]
// propagation or [Event.Cancel] the event, which asks the firing widget to
// undo the change it announced.
//
//	btn.Actor.AddListener(sprig.ChangeListener(func(e *sprig.Event, a *sprig.Actor) {
//		log.Println("clicked", a.Name)
//	}))
//
// [InputListener], [ClickListener], [FocusListener] and [ChangeListener]
// cover the common cases. A listener that handles a touchDown gains touch
// focus and keeps receiving that pointer's drags and release.
//
// # Focus
//
// A [HUD] tracks keyboard focus, scroll focus and touch focus. Keyboard and
// scroll focus changes fire vetoable focus events. A [FocusManager] tracks
// the one generally-focused widget, and can be shared between HUDs.
//
// # Selection
//
// [Selection] and [ArraySelection] hold a widget's selected items, with
// ctrl toggling and shift range selection. Every change fires a change event
// on the owning actor; a listener that cancels it reverts the selection.
//
// # Testing
//
// [HUD.InjectClick], [HUD.InjectDrag] and friends queue synthetic input
// consumed one event per frame. [LoadTestScript] turns a JSON script into a
// [TestRunner] that drives those injections and takes screenshots.
//
// [Ebitengine]: https://ebitengine.org
package sprig
