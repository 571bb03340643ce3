package api

import (
	"github.com/tendant/content-model/pkg/contentmodel"
)

func typeResponse(t *contentmodel.Type) TypeResponse {
	attrs := t.Attributes()
	resp := TypeResponse{
		ID:            t.ID(),
		Attributes:    make([]AttributeResponse, 0, len(attrs)),
		Actions:       t.Actions(),
		LiveInstances: []string{},
	}
	for _, a := range attrs {
		resp.Attributes = append(resp.Attributes, AttributeResponse{
			Name:       a.Name,
			Kind:       string(a.Kind),
			Type:       a.TypeTag,
			Default:    present(a.Default),
			HasDefault: a.HasDefault,
		})
	}
	for _, inst := range t.Instances() {
		resp.LiveInstances = append(resp.LiveInstances, inst.ID().String())
	}
	return resp
}

func instanceResponse(inst *contentmodel.Instance) InstanceResponse {
	resp := InstanceResponse{
		ID:      inst.ID().String(),
		Name:    inst.Name(),
		Removed: inst.Removed(),
		Attrs:   make(map[string]any),
	}
	if p := inst.Parent(); p != nil {
		resp.ParentID = p.ID().String()
	}
	for k, v := range inst.Attrs() {
		resp.Attrs[k] = present(v)
	}
	return resp
}

// present makes v JSON-safe: instances become references and functions are
// dropped. Parent links can form cycles, so instances are never expanded.
func present(v any) any {
	switch val := v.(type) {
	case *contentmodel.Instance:
		if val == nil {
			return nil
		}
		return map[string]string{"instance_id": val.ID().String(), "name": val.Name()}
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = present(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for k, item := range val {
			out[k] = present(item)
		}
		return out
	case func(*contentmodel.Instance) any, contentmodel.ComputedFunc, contentmodel.ActionFunc, contentmodel.BoundAction:
		return nil
	}
	return v
}
