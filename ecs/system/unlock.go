package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/adumbration/adumbration/prefabs"
)

// UnlockRule decides whether the final door opens for a set of collected keys.
type UnlockRule interface {
	Unlocked(keys [4]bool) bool
}

// UnlockFunc adapts a plain function to UnlockRule.
type UnlockFunc func(keys [4]bool) bool

func (f UnlockFunc) Unlocked(keys [4]bool) bool { return f(keys) }

// AnyTwoKeys opens the door once any two keys are held.
var AnyTwoKeys = UnlockFunc(func(keys [4]bool) bool {
	n := 0
	for _, k := range keys {
		if k {
			n++
		}
	}
	return n >= 2
})

// ScriptUnlockRule evaluates a tengo script. The script receives `keys` as an
// array of four bools and must define a boolean `unlocked`.
type ScriptUnlockRule struct {
	name     string
	compiled *tengo.Compiled
	fallback UnlockRule
}

func NewScriptUnlockRule(name string, src []byte) (*ScriptUnlockRule, error) {
	script := tengo.NewScript(src)
	if err := script.Add("keys", keysValue([4]bool{})); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile unlock script %q: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("run unlock script %q: %w", name, err)
	}
	if !compiled.IsDefined("unlocked") {
		return nil, fmt.Errorf("unlock script %q does not define unlocked", name)
	}
	return &ScriptUnlockRule{name: name, compiled: compiled, fallback: AnyTwoKeys}, nil
}

// LoadUnlockRule loads the script named in tuning, falling back to AnyTwoKeys
// when it cannot be read or compiled.
func LoadUnlockRule(spec prefabs.FinalDoorSpec) UnlockRule {
	if spec.Script == "" {
		return AnyTwoKeys
	}
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		log.Printf("door: load unlock script: %v", err)
		return AnyTwoKeys
	}
	rule, err := NewScriptUnlockRule(spec.Script, src)
	if err != nil {
		log.Printf("door: %v", err)
		return AnyTwoKeys
	}
	return rule
}

func (r *ScriptUnlockRule) Unlocked(keys [4]bool) bool {
	if r == nil || r.compiled == nil {
		return AnyTwoKeys.Unlocked(keys)
	}
	if err := r.compiled.Set("keys", keysValue(keys)); err != nil {
		log.Printf("door: unlock script %q: %v", r.name, err)
		return r.fallback.Unlocked(keys)
	}
	if err := r.compiled.Run(); err != nil {
		log.Printf("door: unlock script %q: %v", r.name, err)
		return r.fallback.Unlocked(keys)
	}
	return r.compiled.Get("unlocked").Bool()
}

func keysValue(keys [4]bool) []any {
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}
