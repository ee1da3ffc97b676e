package view

import (
	"testing"

	"github.com/sakif/kitcraft/internal/model"
)

func testKit(id string) *model.ProjectKit {
	return &model.ProjectKit{ID: id, ProjectName: "Birdhouse"}
}

func loadedController() *Controller {
	c := NewController()
	c.SetStorageLoaded()
	return c
}

func TestControllerLoadingGate(t *testing.T) {
	c := NewController()

	if got := c.Current(); got != Loading {
		t.Errorf("Current() before storage load = %q, want %q", got, Loading)
	}
	if err := c.NavigateTo(Create); err == nil {
		t.Error("NavigateTo() before storage load should fail")
	}
	if err := c.SelectKit(testKit("k1")); err == nil {
		t.Error("SelectKit() before storage load should fail")
	}

	c.SetStorageLoaded()
	if got := c.Current(); got != Dashboard {
		t.Errorf("Current() after storage load = %q, want %q", got, Dashboard)
	}
}

func TestControllerDirectNavigation(t *testing.T) {
	c := loadedController()

	for _, v := range []View{Create, Projects, Cart, Dashboard} {
		if err := c.NavigateTo(v); err != nil {
			t.Fatalf("NavigateTo(%q) error = %v", v, err)
		}
		if got := c.Current(); got != v {
			t.Errorf("Current() = %q, want %q", got, v)
		}
	}
}

func TestControllerKitNotDirectlyNavigable(t *testing.T) {
	c := loadedController()

	if err := c.NavigateTo(Kit); err == nil {
		t.Error("NavigateTo(Kit) should fail without a selected kit")
	}
	if err := c.NavigateTo(View("settings")); err == nil {
		t.Error("NavigateTo() with an unknown view should fail")
	}
}

func TestControllerSelectKit(t *testing.T) {
	c := loadedController()
	kit := testKit("k1")

	if err := c.SelectKit(kit); err != nil {
		t.Fatalf("SelectKit() error = %v", err)
	}
	if got := c.Current(); got != Kit {
		t.Errorf("Current() = %q, want %q", got, Kit)
	}
	if got := c.SelectedKit(); got != kit {
		t.Errorf("SelectedKit() = %v, want the selected kit", got)
	}

	if err := c.SelectKit(nil); err == nil {
		t.Error("SelectKit(nil) should fail")
	}
}

func TestControllerKitWithoutSelectionFallsBack(t *testing.T) {
	c := loadedController()
	c.current = Kit // simulate a corrupted navigation state

	if got := c.Current(); got != Dashboard {
		t.Errorf("Current() = %q, want fallback to %q", got, Dashboard)
	}
}

func TestControllerGenerationSuccess(t *testing.T) {
	c := loadedController()
	if err := c.NavigateTo(Create); err != nil {
		t.Fatal(err)
	}

	if err := c.BeginGeneration(); err != nil {
		t.Fatalf("BeginGeneration() error = %v", err)
	}
	if !c.Generating() {
		t.Error("Generating() = false, want true while in flight")
	}

	// Busy flag blocks re-submission.
	if err := c.BeginGeneration(); err == nil {
		t.Error("BeginGeneration() while in flight should fail")
	}

	kit := testKit("k2")
	if err := c.GenerationSucceeded(kit); err != nil {
		t.Fatalf("GenerationSucceeded() error = %v", err)
	}
	if c.Generating() {
		t.Error("Generating() = true after completion, want false")
	}
	if got := c.Current(); got != Kit {
		t.Errorf("Current() = %q, want %q", got, Kit)
	}
	if got := c.SelectedKit(); got != kit {
		t.Error("SelectedKit() should be the generated kit")
	}
}

func TestControllerGenerationFailure(t *testing.T) {
	c := loadedController()
	if err := c.NavigateTo(Create); err != nil {
		t.Fatal(err)
	}
	if err := c.BeginGeneration(); err != nil {
		t.Fatal(err)
	}

	c.GenerationFailed("the model returned an unusable response")

	if got := c.Current(); got != Create {
		t.Errorf("Current() after failure = %q, want %q", got, Create)
	}
	if c.Generating() {
		t.Error("Generating() = true after failure, want false")
	}
	if got := c.GenerationError(); got != "the model returned an unusable response" {
		t.Errorf("GenerationError() = %q", got)
	}

	// The form is re-enabled: a new attempt clears the inline error.
	if err := c.BeginGeneration(); err != nil {
		t.Fatalf("BeginGeneration() after failure error = %v", err)
	}
	if got := c.GenerationError(); got != "" {
		t.Errorf("GenerationError() after retry = %q, want empty", got)
	}
}

func TestControllerGenerationRequiresCreateView(t *testing.T) {
	c := loadedController()

	if err := c.BeginGeneration(); err == nil {
		t.Error("BeginGeneration() off the create view should fail")
	}
	if err := c.GenerationSucceeded(testKit("k3")); err == nil {
		t.Error("GenerationSucceeded() with no attempt in flight should fail")
	}
}
