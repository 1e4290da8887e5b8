package adapter

import (
	"context"
	"reflect"

	"vergate/internal/ports"
	"vergate/internal/types"
)

// activeFieldName is the exported flag field expected on bare channel records.
const activeFieldName = "Active"

// applyProbe attempts one activation shape. handled is false when the shape is
// structurally unavailable, so the next probe in the chain runs.
type applyProbe func(ctx context.Context, cat ports.Catalog, r ports.Resource, active bool) (handled bool, err error)

// applyChain is the fixed priority order: collection-level setter, then
// entry-level setter, then direct mutation of the handle's Active field.
var applyChain = []applyProbe{
	func(ctx context.Context, cat ports.Catalog, r ports.Resource, active bool) (bool, error) {
		s, ok := cat.(ports.ActivationSetter)
		if !ok {
			return false, nil
		}
		return true, s.SetResourceActive(ctx, r, active)
	},
	func(_ context.Context, _ ports.Catalog, r ports.Resource, active bool) (bool, error) {
		s, ok := r.(ports.ActiveSetter)
		if !ok {
			return false, nil
		}
		s.SetActive(active)
		return true, nil
	},
	func(_ context.Context, _ ports.Catalog, r ports.Resource, active bool) (bool, error) {
		return setActiveField(r, active), nil
	},
}

// readActive mirrors the apply chain's entry-level pair for reads: accessor
// method first, then the bare field. Indeterminate state reads as active.
func readActive(r ports.Resource) (bool, error) {
	if rep, ok := r.(ports.ActiveReporter); ok {
		return rep.IsActive(), nil
	}
	if v, ok := readActiveField(r); ok {
		return v, nil
	}
	return true, types.Err(types.ErrStructural, nil, "channel %q exposes no activation state", r.ResourceName())
}

// setActiveField mutates an exported Active bool field on the handle's
// underlying struct. Last-resort shape for catalogs handing out bare records.
func setActiveField(r ports.Resource, active bool) bool {
	f, ok := activeField(r)
	if !ok || !f.CanSet() {
		return false
	}
	f.SetBool(active)
	return true
}

func readActiveField(r ports.Resource) (value, ok bool) {
	f, ok := activeField(r)
	if !ok {
		return false, false
	}
	return f.Bool(), true
}

func activeField(r ports.Resource) (reflect.Value, bool) {
	v := reflect.ValueOf(r)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	f := v.FieldByName(activeFieldName)
	if !f.IsValid() || f.Kind() != reflect.Bool {
		return reflect.Value{}, false
	}
	return f, true
}
