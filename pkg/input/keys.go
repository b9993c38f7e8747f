package input

import (
	"maps"
	"slices"
	"strings"
)

// ScanCode is a hardware key code as reported by the platform.
type ScanCode uint32

// Key is a physical key.
type Key int

const (
	KeyUnknown Key = iota
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
	KeyBackSpace
	KeyEscape
	KeySpace
	KeyTab
	KeyEnter
	KeyDelete
	KeyLeftCommand
	KeyRightCommand
	KeyLeftAlt
	KeyRightAlt
	KeyControl
	KeyFunction
	KeyCapsLock
	KeyLeftShift
	KeyRightShift
	KeyGraveAccent
	KeyMinus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySemicolon
	KeyApostrophe
	KeyComma
	KeyPeriod
	KeySlash
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// keyTable is indexed by Key and holds each key's name and macOS virtual
// key code.
var keyTable = [...]struct {
	name string
	code ScanCode
}{
	{"Unknown", 0}, {"0", 29}, {"1", 18}, {"2", 19}, {"3", 20}, {"4", 21},
	{"5", 23}, {"6", 22}, {"7", 26}, {"8", 28}, {"9", 25},
	{"A", 0}, {"B", 11}, {"C", 8}, {"D", 2}, {"E", 14}, {"F", 3}, {"G", 5},
	{"H", 4}, {"I", 34}, {"J", 38}, {"K", 40}, {"L", 37}, {"M", 46}, {"N", 45},
	{"O", 31}, {"P", 35}, {"Q", 12}, {"R", 15}, {"S", 1}, {"T", 17}, {"U", 32},
	{"V", 9}, {"W", 13}, {"X", 7}, {"Y", 16}, {"Z", 6},
	{"BackSpace", 51}, {"Escape", 53}, {"Space", 49}, {"Tab", 48},
	{"Enter", 36}, {"Delete", 117},
	{"LeftCommand", 55}, {"RightCommand", 54}, {"LeftAlt", 58}, {"RightAlt", 61},
	{"Control", 59}, {"Function", 63}, {"CapsLock", 57},
	{"LeftShift", 56}, {"RightShift", 60},
	{"GraveAccent", 50}, {"Minus", 27}, {"Equal", 24},
	{"LeftBracket", 33}, {"RightBracket", 30}, {"Backslash", 42},
	{"Semicolon", 41}, {"Apostrophe", 39}, {"Comma", 43}, {"Period", 47},
	{"Slash", 44},
	{"Left", 123}, {"Right", 124}, {"Up", 126}, {"Down", 125},
}

var scanCodes = make(map[ScanCode]Key, len(keyTable))

func init() {
	for k := KeyNum0; int(k) < len(keyTable); k++ {
		scanCodes[keyTable[k].code] = k
	}
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyTable) {
		return keyTable[KeyUnknown].name
	}
	return keyTable[k].name
}

// KeyFromScanCode looks up code and returns KeyUnknown for codes outside
// the table.
func KeyFromScanCode(code ScanCode) Key {
	if k, ok := scanCodes[code]; ok {
		return k
	}
	return KeyUnknown
}

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModCapsLock
	ModNumLock
)

// Has reports whether every modifier in m is set.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod == mod
}

// With returns m with mod set.
func (m Modifiers) With(mod Modifiers) Modifiers {
	return m | mod
}

// Without returns m with mod cleared.
func (m Modifiers) Without(mod Modifiers) Modifiers {
	return m &^ mod
}

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var names []string
	for _, n := range []struct {
		mod  Modifiers
		name string
	}{
		{ModShift, "shift"},
		{ModControl, "control"},
		{ModAlt, "alt"},
		{ModCapsLock, "capslock"},
		{ModNumLock, "numlock"},
	} {
		if m.Has(n.mod) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "+")
}

// KeyAction is what happened to a key.
type KeyAction int

const (
	KeyRelease KeyAction = iota
	KeyPress
	KeyRepeat
)

// HitKey is one key event. Character is zero for non-printable keys.
type HitKey struct {
	Character rune
	ScanCode  ScanCode
	Key       Key
	Action    KeyAction
	Modifiers Modifiers
}

// NewHitKey resolves the key for code.
func NewHitKey(character rune, code ScanCode, action KeyAction, modifiers Modifiers) HitKey {
	return HitKey{
		Character: character,
		ScanCode:  code,
		Key:       KeyFromScanCode(code),
		Action:    action,
		Modifiers: modifiers,
	}
}

type activeKey struct {
	character rune
	action    KeyAction
	pending   bool
}

// KeyTracker assembles HitKeys from platform callbacks that deliver the
// scan code, the character and the action separately.
type KeyTracker struct {
	modifiers Modifiers
	scanCode  ScanCode
	hasCode   bool
	keys      map[ScanCode]*activeKey
}

// NewKeyTracker returns an empty tracker.
func NewKeyTracker() *KeyTracker {
	return &KeyTracker{keys: make(map[ScanCode]*activeKey)}
}

// PushScanCode selects the key subsequent calls refer to.
func (t *KeyTracker) PushScanCode(code ScanCode) {
	t.scanCode, t.hasCode = code, true
	if _, ok := t.keys[code]; !ok {
		t.keys[code] = &activeKey{}
	}
}

// PushCharacter sets the character of the current key.
func (t *KeyTracker) PushCharacter(ch rune) {
	if k := t.current(); k != nil {
		k.character = ch
	}
}

// PushAction sets the pending action of the current key.
func (t *KeyTracker) PushAction(action KeyAction) {
	if k := t.current(); k != nil {
		k.action = action
		k.pending = true
	}
}

// SetModifiers adds mod to the held modifiers.
func (t *KeyTracker) SetModifiers(mod Modifiers) {
	t.modifiers = t.modifiers.With(mod)
}

// ClearModifiers removes mod from the held modifiers.
func (t *KeyTracker) ClearModifiers(mod Modifiers) {
	t.modifiers = t.modifiers.Without(mod)
}

// Poll returns one HitKey per key with a pending action, ordered by scan
// code. Released keys are forgotten.
func (t *KeyTracker) Poll() []HitKey {
	var hits []HitKey
	for _, code := range sortedCodes(t.keys) {
		k := t.keys[code]
		if !k.pending {
			continue
		}
		hits = append(hits, NewHitKey(k.character, code, k.action, t.modifiers))
		k.pending = false
		if k.action == KeyRelease {
			delete(t.keys, code)
		}
	}
	return hits
}

func (t *KeyTracker) current() *activeKey {
	if !t.hasCode {
		return nil
	}
	return t.keys[t.scanCode]
}

func sortedCodes(keys map[ScanCode]*activeKey) []ScanCode {
	return slices.Sorted(maps.Keys(keys))
}
