package sprig

import "errors"

// ErrNoHUD is returned by HUD-relative operations invoked on an actor that is
// not attached to any HUD.
var ErrNoHUD = errors.New("sprig: actor is not attached to a HUD")

// ErrNotSavable is returned when persisting an actor whose Savable flag is false.
var ErrNotSavable = errors.New("sprig: actor is not savable")
