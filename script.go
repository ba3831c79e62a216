package main

import (
	"context"
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// RunRoomScript runs a room's tengo enter script. The script sees a `room`
// map with:
//
//	room.name                         the room name
//	room.set_walkbox_enabled(n, b)    toggle walkbox n, false if unknown
//	room.walkbox_enabled(n)           whether walkbox n is enabled
//	room.find_path(x1, y1, x2, y2)    waypoints as [[x, y], ...]
func RunRoomScript(ctx context.Context, room *Room) error {
	if room == nil || room.ScriptSource == "" {
		return nil
	}

	script := tengo.NewScript([]byte(room.ScriptSource))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("room", roomScriptModule(room)); err != nil {
		return fmt.Errorf("script: %s: %w", room.Name, err)
	}

	if _, err := script.RunContext(ctx); err != nil {
		return fmt.Errorf("script: %s: %w", room.Name, err)
	}
	return nil
}

func roomScriptModule(room *Room) *tengo.ImmutableMap {
	pf := room.PathFinder
	values := map[string]tengo.Object{
		"name": &tengo.String{Value: room.Name},
	}

	values["set_walkbox_enabled"] = &tengo.UserFunction{Name: "set_walkbox_enabled", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, ok := tengo.ToString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "name", Expected: "string", Found: args[0].TypeName()}
		}
		enabled, ok := tengo.ToBool(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "enabled", Expected: "bool", Found: args[1].TypeName()}
		}
		if err := pf.SetWalkboxEnabled(name, enabled); err != nil {
			log.Printf("⚠️  Room %s script: %v: %q\n", room.Name, err, name)
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["walkbox_enabled"] = &tengo.UserFunction{Name: "walkbox_enabled", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, ok := tengo.ToString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "name", Expected: "string", Found: args[0].TypeName()}
		}
		for _, w := range pf.Walkboxes() {
			if w.Name == name {
				if w.IsEnabled() {
					return tengo.TrueValue, nil
				}
				return tengo.FalseValue, nil
			}
		}
		return tengo.FalseValue, nil
	}}

	values["find_path"] = &tengo.UserFunction{Name: "find_path", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		var coords [4]float64
		for i, arg := range args {
			f, ok := tengo.ToFloat64(arg)
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "coordinate", Expected: "number", Found: arg.TypeName()}
			}
			coords[i] = f
		}

		path := pf.CalculatePath(Pt(coords[0], coords[1]), Pt(coords[2], coords[3]))
		out := make([]tengo.Object, 0, len(path))
		for _, p := range path {
			out = append(out, &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: p.X}, &tengo.Float{Value: p.Y}}})
		}
		return &tengo.Array{Value: out}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
