package launcher

import (
	"context"

	"github.com/flaskstudio/flaskstudio/internal/analyzer"
	"github.com/flaskstudio/flaskstudio/internal/locator"
)

// Resolution is the launcher string the server will be started with, along
// with how it was settled on.
type Resolution struct {
	AppRef string
	Method analyzer.RunMethod
	// Validated is false when every candidate failed probing and the primary
	// guess is being used anyway.
	Validated bool
	// Tried lists the candidates that were probed and rejected.
	Tried []string
}

// ResolveLauncher settles the launcher string for a project. An explicit
// override wins unprobed. Otherwise the located reference is probed, then
// each generated alternative, and the first one that loads is used. When
// nothing probes clean the primary reference is kept, downgraded to a direct
// run if the project supports one.
func ResolveLauncher(ctx context.Context, v *Validator, info *analyzer.ProjectInfo, override string) Resolution {
	if override != "" {
		return Resolution{AppRef: override, Method: analyzer.RunFlask, Validated: true}
	}

	primary := locator.Locate(info.Root, info.MainFile)
	if v == nil {
		return Resolution{AppRef: primary, Method: analyzer.RunFlask}
	}

	if err := v.Validate(ctx, primary); err == nil {
		return Resolution{AppRef: primary, Method: analyzer.RunFlask, Validated: true}
	}

	tried := []string{primary}
	for _, alt := range locator.Alternatives(info.Root, info.MainFile) {
		if alt == primary {
			continue
		}
		if err := v.Validate(ctx, alt); err == nil {
			return Resolution{AppRef: alt, Method: analyzer.RunFlask, Validated: true, Tried: tried}
		}
		tried = append(tried, alt)
	}

	res := Resolution{AppRef: primary, Method: analyzer.RunFlask, Tried: tried}
	if info.RecommendedRun == analyzer.RunDirect && info.MainFile != "" {
		res.Method = analyzer.RunDirect
	}
	return res
}
