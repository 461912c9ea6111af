package assistant

import (
	"time"

	adktool "google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"concierge/internal/metrics"
	"concierge/internal/tools"
	"concierge/pkg/errors"
)

// ADKTool exposes a registered stub tool as an ADK function tool.
func ADKTool(reg *tools.Registry, name string) (adktool.Tool, error) {
	t, ok := reg.Get(name)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "tool %s is not registered", name)
	}

	wrapped, err := functiontool.New(
		functiontool.Config{
			Name:        t.Name(),
			Description: t.Description(),
		},
		func(ctx adktool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			start := time.Now()
			result, err := t.Execute(ctx, args)
			metrics.RecordToolExecution(t.Name(), time.Since(start), err)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"result": result}, nil
		},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "wrap tool %s for ADK", name)
	}

	return wrapped, nil
}

// ADKTools wraps every tool named in the list.
func ADKTools(reg *tools.Registry, names []string) ([]adktool.Tool, error) {
	wrapped := make([]adktool.Tool, 0, len(names))
	for _, name := range names {
		t, err := ADKTool(reg, name)
		if err != nil {
			return nil, err
		}
		wrapped = append(wrapped, t)
	}
	return wrapped, nil
}
