package kala

import (
	"encoding/json"
	"fmt"
	"os"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Key    string  `json:"key,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input and screenshots across frames for
// automated UI runs. Attach it to an App via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "click", "drag", "wait", "scroll":
		case "key":
			if _, ok := keyNames[st.Key]; !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// LoadTestScriptFile reads and parses the test script at path.
func LoadTestScriptFile(path string) (*TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test script: %w", err)
	}
	return LoadTestScript(data)
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(j *Injector, shots *screenshotQueue) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if j.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		shots.add(st.Label)
	case "click":
		j.InjectClick(st.X, st.Y)
	case "drag":
		j.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "key":
		j.InjectKey(keyNames[st.Key])
	case "scroll":
		j.InjectScroll(st.DX, st.DY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && j.Pending() == 0 {
		r.done = true
	}
}

// keyNames maps script key names to keys.
var keyNames = map[string]Key{
	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF, "g": KeyG,
	"h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL, "m": KeyM, "n": KeyN,
	"o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR, "s": KeyS, "t": KeyT, "u": KeyU,
	"v": KeyV, "w": KeyW, "x": KeyX, "y": KeyY, "z": KeyZ,
	"0": KeyNum0, "1": KeyNum1, "2": KeyNum2, "3": KeyNum3, "4": KeyNum4,
	"5": KeyNum5, "6": KeyNum6, "7": KeyNum7, "8": KeyNum8, "9": KeyNum9,
	"enter": KeyEnter, "escape": KeyEscape, "space": KeySpace, "tab": KeyTab,
	"backspace": KeyBackspace, "delete": KeyDelete,
	"left": KeyArrowLeft, "right": KeyArrowRight, "up": KeyArrowUp, "down": KeyArrowDown,
}
