package zorkvm

import (
	anko_core "github.com/mattn/anko/builtins"
	anko_vm "github.com/mattn/anko/vm"
)

// ScriptingVM wraps an Anko interpreter environment, built the same way the
// teacher's newScriptingEnv assembles one: import the safe builtin packages
// once, then hand out fresh child environments per call so handler state
// never leaks between invocations.
type ScriptingVM struct {
	root *anko_vm.Env
}

// NewScriptingVM constructs a ScriptingVM with the builtin packages loaded.
func NewScriptingVM() *ScriptingVM {
	vm := anko_vm.NewEnv()
	anko_core.Import(vm)
	return &ScriptingVM{root: vm}
}

// ScriptedHandler adapts an Anko source string to the engine's HandlerFunc
// signature (spec §4.5/§9's "closure-based handler" option, expressed as
// data instead of a compiled Go closure). The script is evaluated with
// `engine`, `location`, `player`, `verb` and `preposition` bound into scope,
// plus `directObject`/`indirectObject` when those refer to items. The value
// of its last expression is the result: a non-empty string becomes a plain
// message; anything else returns nil (fall through).
type ScriptedHandler struct {
	vm     *ScriptingVM
	Source string
}

// NewScriptedHandler builds a ScriptedHandler bound to a VM and source.
func NewScriptedHandler(vm *ScriptingVM, source string) *ScriptedHandler {
	return &ScriptedHandler{vm: vm, Source: source}
}

// Handle runs the script as a HandlerFunc.
func (s *ScriptedHandler) Handle(ctx *HookContext, cmd Command) *ActionResult {
	env := s.vm.root.NewEnv()

	env.Define("engine", ctx.Engine)
	env.Define("location", ctx.Location)
	env.Define("player", ctx.Player)
	env.Define("verb", cmd.Verb)
	env.Define("preposition", cmd.Preposition)
	if cmd.DirectObject != nil && cmd.DirectObject.Kind == RefItem {
		env.Define("directObject", ItemProxyFor(ctx.Engine, ctx.Comp, cmd.DirectObject.Item))
	}
	if cmd.IndirectObject != nil && cmd.IndirectObject.Kind == RefItem {
		env.Define("indirectObject", ItemProxyFor(ctx.Engine, ctx.Comp, cmd.IndirectObject.Item))
	}

	out, err := env.Execute(s.Source)
	if err != nil {
		return Msg("Something in the world's scripting misfired.")
	}
	if out == nil || !out.IsValid() {
		return nil
	}
	if text, ok := out.Interface().(string); ok && text != "" {
		return Msg("%s", text)
	}
	return nil
}
