package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	name         string
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	unmounts     int
	trace        *[]string
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
	if m.trace != nil {
		*m.trace = append(*m.trace, "update:"+m.name)
	}
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
	if m.trace != nil {
		*m.trace = append(*m.trace, "draw:"+m.name)
	}
}

// Unmount records the teardown.
func (m *MockScene) Unmount() {
	m.unmounts++
	if m.trace != nil {
		*m.trace = append(*m.trace, "unmount:"+m.name)
	}
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager(nil)
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if len(sm.Layers()) != 0 {
		t.Error("Expected no layers initially")
	}
}

// TestSceneManagerPush verifies that Push appends layers on top and ignores nil.
func TestSceneManagerPush(t *testing.T) {
	sm := NewSceneManager(nil)
	bg := &MockScene{name: "bg"}
	fg := &MockScene{name: "fg"}

	sm.Push(bg)
	sm.Push(nil)
	sm.Push(fg)

	layers := sm.Layers()
	if len(layers) != 2 {
		t.Fatalf("Expected 2 layers, got %d", len(layers))
	}
	if layers[0] != bg || layers[1] != fg {
		t.Error("Layers are not in push order")
	}
}

// TestSceneManagerStackingOrder verifies that the background layer is updated and drawn first.
func TestSceneManagerStackingOrder(t *testing.T) {
	var trace []string
	sm := NewSceneManager(nil)
	sm.Push(&MockScene{name: "bg", trace: &trace})
	sm.Push(&MockScene{name: "fg", trace: &trace})

	sm.Update(0.016)
	sm.Draw(ebiten.NewImage(10, 10))

	want := []string{"update:bg", "update:fg", "draw:bg", "draw:fg"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("trace[%d] = %s, want %s", i, trace[i], want[i])
		}
	}
}

// TestSceneManagerUpdate verifies that Update passes deltaTime to every layer.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager(nil)
	mockScene := &MockScene{}
	sm.Push(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerUpdateNoScene verifies that Update handles an empty stack gracefully.
func TestSceneManagerUpdateNoScene(t *testing.T) {
	sm := NewSceneManager(nil)
	sm.Update(0.016) // Should not panic
}

// TestSceneManagerClose verifies that Close unmounts top-down exactly once.
func TestSceneManagerClose(t *testing.T) {
	var trace []string
	sm := NewSceneManager(nil)
	bg := &MockScene{name: "bg", trace: &trace}
	fg := &MockScene{name: "fg", trace: &trace}
	sm.Push(bg)
	sm.Push(fg)

	sm.Close()
	sm.Close()

	if bg.unmounts != 1 || fg.unmounts != 1 {
		t.Errorf("unmounts bg=%d fg=%d, want 1 each", bg.unmounts, fg.unmounts)
	}
	if len(trace) != 2 || trace[0] != "unmount:fg" || trace[1] != "unmount:bg" {
		t.Errorf("trace = %v, want top-down unmount", trace)
	}

	sm.Update(0.016)
	if bg.updateCalled {
		t.Error("Update reached a layer after Close")
	}
}
