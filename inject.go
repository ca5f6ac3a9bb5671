package awl

import (
	"reflect"

	"github.com/awl-di/awl/internal/keys"
	"github.com/awl-di/awl/internal/typeinfo"
)

// injectMembers performs field and method injection on a freshly
// constructed instance, walking the embedding hierarchy root-first so
// base-level members are wired before derived-level ones. Instances
// short-circuited from the instance map never pass through here.
func (in *Injector) injectMembers(buf reflect.Value, info *typeinfo.Info) error {
	target := buf.Elem()

	for i, lv := range info.Levels {
		for _, f := range lv.Fields {
			if err := in.injectField(target, info, f); err != nil {
				return err
			}
		}
		for _, sf := range lv.StaticFields {
			if err := in.injectStaticField(lv.Type, info, sf); err != nil {
				return err
			}
		}
		for _, m := range lv.Methods {
			if !m.Injectable {
				continue
			}
			if overridden(info.Levels, i, m) {
				continue
			}
			if err := in.invokeMethod(target, info, lv, m); err != nil {
				return err
			}
		}
		for _, sm := range lv.StaticMethods {
			if err := in.invokeStaticMethod(lv.Type, info, sm); err != nil {
				return err
			}
		}
	}
	return nil
}

func (in *Injector) injectField(target reflect.Value, info *typeinfo.Info, f typeinfo.Field) error {
	dep, err := in.resolveKey(keys.New(f.Type, f.Qualifiers...))
	if err != nil {
		return err
	}

	av, err := argValue(dep, f.Type)
	if err != nil {
		return errInjection(keys.TypeKey(info.Type), "field "+f.Name, err)
	}
	target.FieldByIndex(f.Index).Set(av)
	in.config.logger.Debug("injected field", "type", keys.TypeKey(info.Type), "field", f.Name)
	return nil
}

func (in *Injector) injectStaticField(declaring reflect.Type, info *typeinfo.Info, sf typeinfo.StaticField) error {
	member := "var " + sf.Name
	if in.guarded(declaring, member) {
		return nil
	}

	dep, err := in.resolveKey(keys.New(sf.Type, sf.Qualifiers...))
	if err != nil {
		return err
	}
	av, err := argValue(dep, sf.Type)
	if err != nil {
		return errInjection(keys.TypeKey(info.Type), member, err)
	}
	sf.Target.Elem().Set(av)

	in.recordGuard(declaring, member)
	in.config.logger.Debug("injected static field", "declaring", keys.TypeKey(declaring), "var", sf.Name)
	return nil
}

func (in *Injector) invokeMethod(target reflect.Value, info *typeinfo.Info, lv *typeinfo.Level, m typeinfo.Method) error {
	recv := target.FieldByIndex(lv.Index)
	if m.Fn.Type().In(0).Kind() == reflect.Ptr {
		recv = recv.Addr()
	}

	args := make([]reflect.Value, 0, len(m.Params)+1)
	args = append(args, recv)
	for _, p := range m.Params {
		dep, err := in.resolveKey(p.Key())
		if err != nil {
			return err
		}
		av, err := argValue(dep, p.Type)
		if err != nil {
			return errInjection(keys.TypeKey(info.Type), "method "+m.Name, err)
		}
		args = append(args, av)
	}

	results, err := call(m.Fn, args)
	if err != nil {
		return errInjection(keys.TypeKey(info.Type), "method "+m.Name, err)
	}
	if err := trailingError(results); err != nil {
		return errInjection(keys.TypeKey(info.Type), "method "+m.Name, err)
	}
	in.config.logger.Debug("invoked injectable method", "type", keys.TypeKey(info.Type), "method", m.Name)
	return nil
}

func (in *Injector) invokeStaticMethod(declaring reflect.Type, info *typeinfo.Info, sm typeinfo.StaticMethod) error {
	member := "func " + sm.Name
	if in.guarded(declaring, member) {
		return nil
	}

	args := make([]reflect.Value, len(sm.Params))
	for i, p := range sm.Params {
		dep, err := in.resolveKey(p.Key())
		if err != nil {
			return err
		}
		av, err := argValue(dep, p.Type)
		if err != nil {
			return errInjection(keys.TypeKey(info.Type), member, err)
		}
		args[i] = av
	}

	results, err := call(sm.Fn, args)
	if err != nil {
		return errInjection(keys.TypeKey(info.Type), member, err)
	}
	if err := trailingError(results); err != nil {
		return errInjection(keys.TypeKey(info.Type), member, err)
	}

	in.recordGuard(declaring, member)
	in.config.logger.Debug("invoked static method", "declaring", keys.TypeKey(declaring), "func", sm.Name)
	return nil
}

// overridden reports whether a method declared at level i is shadowed
// by a declaration with the same signature at a more-derived level.
// Exported methods are overridable from anywhere; unexported ones only
// by a level in the same package.
func overridden(levels []*typeinfo.Level, i int, m typeinfo.Method) bool {
	sig := m.Signature()
	for j := i + 1; j < len(levels); j++ {
		for _, dm := range levels[j].Methods {
			if dm.Signature() != sig {
				continue
			}
			if m.Exported {
				return true
			}
			if dm.PkgPath == m.PkgPath {
				return true
			}
		}
	}
	return false
}

func trailingError(results []reflect.Value) error {
	if len(results) == 0 {
		return nil
	}
	last := results[len(results)-1]
	if last.Type() != errorType || last.IsNil() {
		return nil
	}
	return last.Interface().(error)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()
