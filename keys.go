package kala

import "github.com/hajimehoshi/ebiten/v2"

// Key identifies a keyboard key. KeyUnknown is the zero value and never
// reports as down.
type Key uint16

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	KeyNum0
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadAdd
	KeyNumpadSubtract
	KeyNumpadMultiply
	KeyNumpadDivide
	KeyNumpadDecimal
	KeyNumLock

	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete

	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyCapsLock
	KeySpace

	KeyShiftLeft
	KeyShiftRight
	KeyCtrlLeft
	KeyCtrlRight
	KeyAltLeft
	KeyAltRight
	KeySuperLeft
	KeySuperRight

	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyMenu

	KeyMinus
	KeyEqual
	KeyBracketLeft
	KeyBracketRight
	KeyBackslash
	KeySemicolon
	KeyApostrophe
	KeyComma
	KeyPeriod
	KeySlash
	KeyTilde
	KeyOem102

	keyCount
)

// MouseButton identifies a mouse button. MouseButtonUnknown is the zero value.
type MouseButton uint8

const (
	MouseButtonUnknown MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonX1
	MouseButtonX2

	mouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonX1:
		return "x1"
	case MouseButtonX2:
		return "x2"
	default:
		return "unknown"
	}
}

// InputCode is either a key or a mouse button, used by combo queries.
type InputCode struct {
	Mouse  bool
	Key    Key
	Button MouseButton
}

// KeyCode wraps k as an InputCode.
func KeyCode(k Key) InputCode { return InputCode{Key: k} }

// MouseCode wraps b as an InputCode.
func MouseCode(b MouseButton) InputCode { return InputCode{Mouse: true, Button: b} }

// ebitenKeys maps every Key to its Ebitengine counterpart.
var ebitenKeys = [keyCount]ebiten.Key{
	KeyA: ebiten.KeyA, KeyB: ebiten.KeyB, KeyC: ebiten.KeyC, KeyD: ebiten.KeyD,
	KeyE: ebiten.KeyE, KeyF: ebiten.KeyF, KeyG: ebiten.KeyG, KeyH: ebiten.KeyH,
	KeyI: ebiten.KeyI, KeyJ: ebiten.KeyJ, KeyK: ebiten.KeyK, KeyL: ebiten.KeyL,
	KeyM: ebiten.KeyM, KeyN: ebiten.KeyN, KeyO: ebiten.KeyO, KeyP: ebiten.KeyP,
	KeyQ: ebiten.KeyQ, KeyR: ebiten.KeyR, KeyS: ebiten.KeyS, KeyT: ebiten.KeyT,
	KeyU: ebiten.KeyU, KeyV: ebiten.KeyV, KeyW: ebiten.KeyW, KeyX: ebiten.KeyX,
	KeyY: ebiten.KeyY, KeyZ: ebiten.KeyZ,

	KeyNum0: ebiten.KeyDigit0, KeyNum1: ebiten.KeyDigit1, KeyNum2: ebiten.KeyDigit2,
	KeyNum3: ebiten.KeyDigit3, KeyNum4: ebiten.KeyDigit4, KeyNum5: ebiten.KeyDigit5,
	KeyNum6: ebiten.KeyDigit6, KeyNum7: ebiten.KeyDigit7, KeyNum8: ebiten.KeyDigit8,
	KeyNum9: ebiten.KeyDigit9,

	KeyF1: ebiten.KeyF1, KeyF2: ebiten.KeyF2, KeyF3: ebiten.KeyF3, KeyF4: ebiten.KeyF4,
	KeyF5: ebiten.KeyF5, KeyF6: ebiten.KeyF6, KeyF7: ebiten.KeyF7, KeyF8: ebiten.KeyF8,
	KeyF9: ebiten.KeyF9, KeyF10: ebiten.KeyF10, KeyF11: ebiten.KeyF11, KeyF12: ebiten.KeyF12,
	KeyF13: ebiten.KeyF13, KeyF14: ebiten.KeyF14, KeyF15: ebiten.KeyF15, KeyF16: ebiten.KeyF16,
	KeyF17: ebiten.KeyF17, KeyF18: ebiten.KeyF18, KeyF19: ebiten.KeyF19, KeyF20: ebiten.KeyF20,
	KeyF21: ebiten.KeyF21, KeyF22: ebiten.KeyF22, KeyF23: ebiten.KeyF23, KeyF24: ebiten.KeyF24,

	KeyNumpad0: ebiten.KeyNumpad0, KeyNumpad1: ebiten.KeyNumpad1, KeyNumpad2: ebiten.KeyNumpad2,
	KeyNumpad3: ebiten.KeyNumpad3, KeyNumpad4: ebiten.KeyNumpad4, KeyNumpad5: ebiten.KeyNumpad5,
	KeyNumpad6: ebiten.KeyNumpad6, KeyNumpad7: ebiten.KeyNumpad7, KeyNumpad8: ebiten.KeyNumpad8,
	KeyNumpad9: ebiten.KeyNumpad9,
	KeyNumpadAdd:      ebiten.KeyNumpadAdd,
	KeyNumpadSubtract: ebiten.KeyNumpadSubtract,
	KeyNumpadMultiply: ebiten.KeyNumpadMultiply,
	KeyNumpadDivide:   ebiten.KeyNumpadDivide,
	KeyNumpadDecimal:  ebiten.KeyNumpadDecimal,
	KeyNumLock:        ebiten.KeyNumLock,

	KeyArrowLeft:  ebiten.KeyArrowLeft,
	KeyArrowRight: ebiten.KeyArrowRight,
	KeyArrowUp:    ebiten.KeyArrowUp,
	KeyArrowDown:  ebiten.KeyArrowDown,
	KeyHome:       ebiten.KeyHome,
	KeyEnd:        ebiten.KeyEnd,
	KeyPageUp:     ebiten.KeyPageUp,
	KeyPageDown:   ebiten.KeyPageDown,
	KeyInsert:     ebiten.KeyInsert,
	KeyDelete:     ebiten.KeyDelete,

	KeyEnter:     ebiten.KeyEnter,
	KeyEscape:    ebiten.KeyEscape,
	KeyBackspace: ebiten.KeyBackspace,
	KeyTab:       ebiten.KeyTab,
	KeyCapsLock:  ebiten.KeyCapsLock,
	KeySpace:     ebiten.KeySpace,

	KeyShiftLeft:  ebiten.KeyShiftLeft,
	KeyShiftRight: ebiten.KeyShiftRight,
	KeyCtrlLeft:   ebiten.KeyControlLeft,
	KeyCtrlRight:  ebiten.KeyControlRight,
	KeyAltLeft:    ebiten.KeyAltLeft,
	KeyAltRight:   ebiten.KeyAltRight,
	KeySuperLeft:  ebiten.KeyMetaLeft,
	KeySuperRight: ebiten.KeyMetaRight,

	KeyPrintScreen: ebiten.KeyPrintScreen,
	KeyScrollLock:  ebiten.KeyScrollLock,
	KeyPause:       ebiten.KeyPause,
	KeyMenu:        ebiten.KeyContextMenu,

	KeyMinus:        ebiten.KeyMinus,
	KeyEqual:        ebiten.KeyEqual,
	KeyBracketLeft:  ebiten.KeyBracketLeft,
	KeyBracketRight: ebiten.KeyBracketRight,
	KeyBackslash:    ebiten.KeyBackslash,
	KeySemicolon:    ebiten.KeySemicolon,
	KeyApostrophe:   ebiten.KeyQuote,
	KeyComma:        ebiten.KeyComma,
	KeyPeriod:       ebiten.KeyPeriod,
	KeySlash:        ebiten.KeySlash,
	KeyTilde:        ebiten.KeyBackquote,
	KeyOem102:       ebiten.KeyIntlBackslash,
}

var ebitenMouseButtons = [mouseButtonCount]ebiten.MouseButton{
	MouseButtonLeft:   ebiten.MouseButtonLeft,
	MouseButtonRight:  ebiten.MouseButtonRight,
	MouseButtonMiddle: ebiten.MouseButtonMiddle,
	MouseButtonX1:     ebiten.MouseButton3,
	MouseButtonX2:     ebiten.MouseButton4,
}
