package fastclick_test

import (
	"testing"
	"time"

	"github.com/jsaction-go/contract/internal/fastclick"
)

type fakeTarget struct{ id string }

func (f fakeTarget) Same(other fastclick.Target) bool {
	o, ok := other.(fakeTarget)
	return ok && o.id == f.id
}

func TestOnTouchStart_EligibleEntersPending(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	ignore := m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)
	if !ignore {
		t.Errorf("want ignore=true on eligible touchstart")
	}
	if m.State() != fastclick.PENDING {
		t.Errorf("State = %v, want PENDING", m.State())
	}
}

func TestOnTouchStart_IneligibleStaysIdle(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	ignore := m.OnTouchStart(fakeTarget{"a"}, 10, 10, false, false)
	if ignore {
		t.Errorf("want ignore=false when ineligible")
	}
	if m.State() != fastclick.IDLE {
		t.Errorf("State = %v, want IDLE", m.State())
	}
}

func TestOnTouchStart_MultiTouchStaysIdle(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	ignore := m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, true)
	if ignore {
		t.Errorf("want ignore=false on multi-touch")
	}
	if m.State() != fastclick.IDLE {
		t.Errorf("State = %v, want IDLE", m.State())
	}
}

func TestOnTouchMove_BeyondThresholdResetsToIdle(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)
	m.OnTouchMove(fakeTarget{"a"}, 30, 30)
	if m.State() != fastclick.IDLE {
		t.Errorf("State = %v, want IDLE after exceeding distance threshold", m.State())
	}
}

func TestOnTouchMove_WithinThresholdStaysPending(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)
	m.OnTouchMove(fakeTarget{"a"}, 11, 11)
	if m.State() != fastclick.PENDING {
		t.Errorf("State = %v, want still PENDING", m.State())
	}
}

func TestOnTouchEnd_SynthesizesAndEntersSuppressing(t *testing.T) {
	var blurred, cleared bool
	m := fastclick.New(fastclick.Hooks{
		Blur:           func() { blurred = true },
		ClearSelection: func() { cleared = true },
	})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)

	var dispatched bool
	suppress := m.OnTouchEnd(fakeTarget{"a"}, 11, 11, false, func(target fastclick.Target, x, y float64) bool {
		dispatched = true
		return false
	})
	if !suppress {
		t.Fatalf("want suppressTouchend=true on synthesis")
	}
	if !dispatched {
		t.Errorf("want dispatch invoked")
	}
	if !blurred || !cleared {
		t.Errorf("want Blur and ClearSelection both invoked, got blurred=%v cleared=%v", blurred, cleared)
	}
	if m.State() != fastclick.SUPPRESSING {
		t.Errorf("State = %v, want SUPPRESSING", m.State())
	}
}

func TestOnTouchEnd_SynthPreventedSkipsSideEffects(t *testing.T) {
	var blurred bool
	m := fastclick.New(fastclick.Hooks{Blur: func() { blurred = true }})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)

	m.OnTouchEnd(fakeTarget{"a"}, 10, 10, false, func(fastclick.Target, float64, float64) bool {
		return true // synthetic click was defaultPrevented
	})
	if blurred {
		t.Errorf("want Blur not invoked when synthesized click was defaultPrevented")
	}
}

func TestOnTouchEnd_DifferentNodeResetsWithoutSynthesis(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)

	var dispatched bool
	suppress := m.OnTouchEnd(fakeTarget{"b"}, 10, 10, false, func(fastclick.Target, float64, float64) bool {
		dispatched = true
		return false
	})
	if suppress || dispatched {
		t.Errorf("want no synthesis when touchend target differs from touchstart target")
	}
	if m.State() != fastclick.IDLE {
		t.Errorf("State = %v, want IDLE", m.State())
	}
}

func TestOnTouchEnd_DefaultPreventedResetsWithoutSynthesis(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)

	suppress := m.OnTouchEnd(fakeTarget{"a"}, 10, 10, true, func(fastclick.Target, float64, float64) bool {
		t.Fatalf("dispatch must not be called when touchend was defaultPrevented")
		return false
	})
	if suppress {
		t.Errorf("want suppressTouchend=false")
	}
}

func TestOnTouchEnd_BeyondDistanceResetsWithoutSynthesis(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)

	suppress := m.OnTouchEnd(fakeTarget{"a"}, 50, 50, false, func(fastclick.Target, float64, float64) bool {
		t.Fatalf("dispatch must not be called beyond distance threshold")
		return false
	})
	if suppress {
		t.Errorf("want suppressTouchend=false")
	}
}

func TestOnTouchEnd_NotPendingIsNoop(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	suppress := m.OnTouchEnd(fakeTarget{"a"}, 10, 10, false, func(fastclick.Target, float64, float64) bool {
		t.Fatalf("dispatch must not be called while IDLE")
		return false
	})
	if suppress {
		t.Errorf("want suppressTouchend=false when machine was never PENDING")
	}
}

func TestOnMouseEvent_SuppressesCascadeNearSuppressedPoint(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)
	m.OnTouchEnd(fakeTarget{"a"}, 10, 10, false, func(fastclick.Target, float64, float64) bool { return false })

	if !m.OnMouseEvent("mousedown", fakeTarget{"a"}, 10, 10, false) {
		t.Errorf("want mousedown suppressed")
	}
	if !m.OnMouseEvent("mouseup", fakeTarget{"a"}, 10, 10, false) {
		t.Errorf("want mouseup suppressed")
	}
	if !m.OnMouseEvent("click", fakeTarget{"a"}, 10, 10, false) {
		t.Errorf("want trailing click suppressed")
	}
	if m.State() != fastclick.IDLE {
		t.Errorf("State = %v, want IDLE after trailing click resets the machine", m.State())
	}
}

func TestOnMouseEvent_SyntheticClickAlwaysPassesThrough(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)
	m.OnTouchEnd(fakeTarget{"a"}, 10, 10, false, func(fastclick.Target, float64, float64) bool { return false })

	if m.OnMouseEvent("click", fakeTarget{"a"}, 10, 10, true) {
		t.Errorf("want the synthetic click itself never suppressed")
	}
}

func TestOnMouseEvent_NotSuppressingPassesThrough(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	if m.OnMouseEvent("click", fakeTarget{"a"}, 10, 10, false) {
		t.Errorf("want no suppression while IDLE")
	}
}

func TestOnMouseEvent_FarFromSuppressedPointPassesThrough(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)
	m.OnTouchEnd(fakeTarget{"a"}, 10, 10, false, func(fastclick.Target, float64, float64) bool { return false })

	if m.OnMouseEvent("mousedown", fakeTarget{"b"}, 500, 500, false) {
		t.Errorf("want mouse event far from the suppressed point to pass through")
	}
	if m.State() != fastclick.IDLE {
		t.Errorf("State = %v, want IDLE after giving up on an unrelated mouse event", m.State())
	}
}

func TestOnTouchStart_AlwaysResetsPriorSequence(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)
	m.OnTouchEnd(fakeTarget{"a"}, 10, 10, false, func(fastclick.Target, float64, float64) bool { return false })
	if m.State() != fastclick.SUPPRESSING {
		t.Fatalf("precondition: want SUPPRESSING")
	}

	m.OnTouchStart(fakeTarget{"b"}, 1, 1, false, false)
	if m.State() != fastclick.IDLE {
		t.Errorf("State = %v, want a fresh touchstart to reset any prior sequence", m.State())
	}
}

func TestLongPressWindow_ExpiresPendingSequence(t *testing.T) {
	m := fastclick.New(fastclick.Hooks{})
	m.OnTouchStart(fakeTarget{"a"}, 10, 10, true, false)

	time.Sleep(450 * time.Millisecond)
	if m.State() != fastclick.IDLE {
		t.Errorf("State = %v, want IDLE after the long-press window elapses", m.State())
	}
}
