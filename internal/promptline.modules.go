package internal

import (
	"strings"

	"go.uber.org/zap"
)

// DetectFunc is the uniform builtin module contract: a pure function of the
// render context that returns the module, or nil when it does not apply.
type DetectFunc func(*Context) *Module

// builtins is the static registry of builtin detectors, keyed by the
// variable name that resolves to them.
var builtins = map[string]DetectFunc{
	"username":     usernameModule,
	"hostname":     hostnameModule,
	"directory":    directoryModule,
	"git_branch":   gitBranchModule,
	"hg_branch":    hgBranchModule,
	"env_var":      envVarModule,
	"cmd_duration": cmdDurationModule,
	"time":         timeModule,
	"character":    characterModule,
}

// LineBreakSentinel marks the position of the prompt's line break in the
// default ordering. It maps to an unconditional newline segment, not to a
// module lookup.
const LineBreakSentinel = "\n"

// PromptOrder is the fixed ordering the synthetic $all variable expands to
var PromptOrder = []string{
	"username",
	"hostname",
	"directory",
	"git_branch",
	"hg_branch",
	"env_var",
	"cmd_duration",
	VarCustomWildcard,
	LineBreakSentinel,
	"time",
	"character",
}

// modulesDisabledByDefault lists builtins that stay off until the user
// enables them.
var modulesDisabledByDefault = map[string]bool{
	"hg_branch": true,
	"time":      true,
}

func moduleDisabledByDefault(name string) bool {
	return modulesDisabledByDefault[name]
}

// IsBuiltin reports whether a variable names a builtin module
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Detect runs a builtin detector by name. Nil when the name is unknown or
// the module does not apply to the context.
func Detect(name string, ctx *Context) *Module {
	detect, ok := builtins[name]
	if !ok {
		return nil
	}
	return detect(ctx)
}

// VariableKind classifies a template variable for dispatch. Computing the
// kind once keeps the string-prefix branching out of the orchestrator body.
type VariableKind int

const (
	KindBuiltin VariableKind = iota
	KindCustomWildcard
	KindCustomNamed
	KindUnknown
)

// ClassifyVariable determines how a variable resolves. For KindCustomNamed
// the returned name is the custom module's bare name.
func ClassifyVariable(variable string) (VariableKind, string) {
	switch {
	case IsBuiltin(variable):
		return KindBuiltin, variable
	case variable == VarCustomWildcard:
		return KindCustomWildcard, ""
	case strings.HasPrefix(variable, CustomPrefix):
		return KindCustomNamed, variable[len(CustomPrefix):]
	default:
		return KindUnknown, variable
	}
}

// HandleVariable resolves one template variable to zero or more modules.
// requested is the full set of variables the root template references; the
// wildcard uses it to skip custom modules that are placed explicitly.
func HandleVariable(variable string, ctx *Context, requested []string) []*Module {
	logger := ctx.Logger()

	kind, name := ClassifyVariable(variable)
	switch kind {
	case KindBuiltin:
		if ctx.Config.IsModuleDisabled(name) {
			return nil
		}
		if module := Detect(name, ctx); module != nil {
			return []*Module{module}
		}
		return nil

	case KindCustomWildcard:
		// Expand every custom module that is not explicitly placed
		// elsewhere in the template and not disabled.
		var modules []*Module
		for _, customName := range ctx.Config.CustomNames() {
			if isExplicitlyRequested(customName, requested) {
				continue
			}
			if disabled, _ := ctx.Config.IsCustomDisabled(customName); disabled {
				continue
			}
			if module := CustomModule(customName, ctx); module != nil {
				modules = append(modules, module)
			}
		}
		return modules

	case KindCustomNamed:
		disabled, found := ctx.Config.IsCustomDisabled(name)
		if !found {
			logger.Debug("custom module referenced but not configured",
				zap.String(LogFieldModule, name),
				zap.Strings("configured", ctx.Config.CustomNames()))
			return nil
		}
		if disabled {
			return nil
		}
		if module := CustomModule(name, ctx); module != nil {
			return []*Module{module}
		}
		return nil

	default:
		logger.Debug("unknown prompt variable", zap.String(LogFieldVariable, variable))
		return nil
	}
}

// isExplicitlyRequested reports whether custom.<name> occurs in the
// requested variable set.
func isExplicitlyRequested(name string, requested []string) bool {
	for _, variable := range requested {
		if len(variable) == len(CustomPrefix)+len(name) &&
			strings.HasPrefix(variable, CustomPrefix) && variable[len(CustomPrefix):] == name {
			return true
		}
	}
	return false
}

// ExpandAll resolves the synthetic $all variable: the fixed default module
// ordering, resolved in parallel, with the line-break sentinel mapped to a
// literal newline segment.
func ExpandAll(ctx *Context, requested []string) []*Segment {
	perEntry := mapOrdered(PromptOrder, func(entry string) []*Segment {
		if entry == LineBreakSentinel {
			return []*Segment{NewSegment(SegmentNameLineBreak, "\n")}
		}
		var segments []*Segment
		for _, module := range HandleVariable(entry, ctx, requested) {
			segments = append(segments, module.Segments()...)
		}
		return segments
	})

	var all []*Segment
	for _, segments := range perEntry {
		all = append(all, segments...)
	}
	return all
}

// ResolveBindings resolves every requested variable into the binding table
// the evaluator renders against. Independent variables are resolved in
// parallel; binding order follows the requested order.
func ResolveBindings(requested []string, ctx *Context) *Bindings {
	resolved := mapOrdered(requested, func(variable string) []*Segment {
		if variable == VarAll {
			return ExpandAll(ctx, requested)
		}
		var segments []*Segment
		for _, module := range HandleVariable(variable, ctx, requested) {
			segments = append(segments, module.Segments()...)
		}
		return segments
	})

	bindings := NewBindings()
	for i, variable := range requested {
		bindings.BindSegments(variable, resolved[i])
	}
	return bindings
}
