// Package view models the client's view/navigation state machine.
//
// The UI itself is out of scope, but its navigation rules are product
// behaviour worth pinning down: which view follows which, when navigation is
// allowed at all, and what happens around a generation attempt. Modeling the
// controller as a plain struct keeps those rules testable without any UI.
//
// States: dashboard, create, projects, kit (detail), cart — plus a loading
// pseudo-view reported while the per-user storage is still being read.
package view

import (
	"fmt"

	"github.com/sakif/kitcraft/internal/model"
)

// View identifies one of the client's screens.
type View string

const (
	Loading   View = "loading"
	Dashboard View = "dashboard"
	Create    View = "create"
	Projects  View = "projects"
	Kit       View = "kit"
	Cart      View = "cart"
)

// Controller is the navigation state machine.
//
// TRANSITIONS:
//   - dashboard → create | projects (user intent)
//   - projects → kit (user selects an existing kit)
//   - create → kit, only via GenerationSucceeded (kit generated AND persisted)
//   - any → cart, any → dashboard, any → create, any → projects (direct, no guards)
//   - kit with no selected kit is invalid: the controller detects it and
//     falls back to dashboard (defensive, unreachable under correct usage)
//
// Nothing renders and nothing navigates until SetStorageLoaded — the client
// shows a loading placeholder while the user's kits and cart are read.
//
// Controller is not safe for concurrent use; the client drives it from a
// single logical thread of control.
type Controller struct {
	current       View
	selected      *model.ProjectKit
	storageLoaded bool
	generating    bool
	generationErr string
}

// NewController creates a Controller gated on storage load, targeting the
// dashboard.
func NewController() *Controller {
	return &Controller{current: Dashboard}
}

// Current returns the view to render: Loading until storage is loaded, the
// actual navigation target afterwards.
func (c *Controller) Current() View {
	if !c.storageLoaded {
		return Loading
	}
	// Defensive: a kit view without a kit falls back to dashboard.
	if c.current == Kit && c.selected == nil {
		c.current = Dashboard
	}
	return c.current
}

// SetStorageLoaded opens the render gate once the user's persisted data has
// been read.
func (c *Controller) SetStorageLoaded() {
	c.storageLoaded = true
}

// NavigateTo moves to a directly navigable view.
//
// Kit is not directly navigable — it is only reached through SelectKit or
// GenerationSucceeded, which supply the kit to show. Navigation before
// storage load is refused.
func (c *Controller) NavigateTo(v View) error {
	if !c.storageLoaded {
		return fmt.Errorf("view: navigation before storage load")
	}

	switch v {
	case Dashboard, Create, Projects, Cart:
		c.current = v
		return nil
	case Kit:
		return fmt.Errorf("view: kit view requires a selected kit")
	default:
		return fmt.Errorf("view: unknown view %q", string(v))
	}
}

// SelectKit shows the detail view for an existing kit.
func (c *Controller) SelectKit(kit *model.ProjectKit) error {
	if !c.storageLoaded {
		return fmt.Errorf("view: navigation before storage load")
	}
	if kit == nil {
		return fmt.Errorf("view: cannot select a nil kit")
	}
	c.selected = kit
	c.current = Kit
	return nil
}

// SelectedKit returns the kit currently shown in the detail view, if any.
func (c *Controller) SelectedKit() *model.ProjectKit {
	return c.selected
}

// BeginGeneration marks a generation attempt in flight.
//
// It fails off the create view, and while a previous attempt is still in
// flight — the busy flag is what disables re-submission; there is no
// operation queue and no cancellation once submitted.
func (c *Controller) BeginGeneration() error {
	if c.Current() != Create {
		return fmt.Errorf("view: generation starts from the create view")
	}
	if c.generating {
		return fmt.Errorf("view: a generation is already in flight")
	}
	c.generating = true
	c.generationErr = ""
	return nil
}

// Generating reports whether a generation attempt is in flight.
func (c *Controller) Generating() bool {
	return c.generating
}

// GenerationSucceeded completes an attempt: the persisted kit becomes the
// selected kit and the view moves to its detail.
func (c *Controller) GenerationSucceeded(kit *model.ProjectKit) error {
	if !c.generating {
		return fmt.Errorf("view: no generation in flight")
	}
	if kit == nil {
		return fmt.Errorf("view: generation succeeded with no kit")
	}
	c.generating = false
	c.generationErr = ""
	c.selected = kit
	c.current = Kit
	return nil
}

// GenerationFailed completes an attempt with an error: the view stays on
// create, the message is surfaced inline, and the form is re-enabled.
func (c *Controller) GenerationFailed(message string) {
	c.generating = false
	c.generationErr = message
}

// GenerationError returns the inline error from the last failed attempt,
// empty when none.
func (c *Controller) GenerationError() string {
	return c.generationErr
}
