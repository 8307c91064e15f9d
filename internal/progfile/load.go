package progfile

import (
	"encoding/json"
	"fmt"
	"os"

	"cexport/internal/program"
)

// Load reads a program database file and resolves it into the
// in-memory program model plus a decompiler serving the recorded
// results.
func Load(path string) (*program.Program, *Decompiler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("progfile: read %s: %w", path, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("progfile: parse %s: %w", path, err)
	}
	return resolve(&f)
}

func resolve(f *File) (*program.Program, *Decompiler, error) {
	// Types first: allocate every node, then wire references, so
	// cyclic graphs (self-referential structs) resolve.
	types := make(map[string]*program.Type, len(f.Types))
	for _, tr := range f.Types {
		if tr.ID == "" {
			return nil, nil, fmt.Errorf("progfile: type with empty id")
		}
		if _, dup := types[tr.ID]; dup {
			return nil, nil, fmt.Errorf("progfile: duplicate type id %q", tr.ID)
		}
		types[tr.ID] = &program.Type{Name: tr.Name}
	}
	typeByID := func(id string) (*program.Type, error) {
		if id == "" {
			return nil, nil
		}
		t, ok := types[id]
		if !ok {
			return nil, fmt.Errorf("progfile: unknown type id %q", id)
		}
		return t, nil
	}

	var typeList []*program.Type
	for _, tr := range f.Types {
		t := types[tr.ID]
		var err error
		switch tr.Kind {
		case "leaf":
			t.Kind = program.Leaf
		case "enum":
			t.Kind = program.Leaf
			for _, v := range tr.Values {
				t.Enum = append(t.Enum, program.EnumValue{Name: v.Name, Value: v.Value})
			}
		case "pointer":
			t.Kind = program.Pointer
			t.Base, err = typeByID(tr.Base)
		case "array":
			t.Kind = program.Array
			t.Len = tr.Len
			t.Base, err = typeByID(tr.Base)
		case "typedef":
			t.Kind = program.Typedef
			t.Base, err = typeByID(tr.Base)
		case "struct", "union":
			t.Kind = program.Composite
			t.Union = tr.Kind == "union"
			for _, m := range tr.Members {
				mt, merr := typeByID(m.Type)
				if merr != nil {
					return nil, nil, merr
				}
				t.Members = append(t.Members, program.Member{Name: m.Name, Type: mt})
			}
		case "funcdef":
			t.Kind = program.FuncDef
			if t.Return, err = typeByID(tr.Return); err == nil {
				for _, p := range tr.Params {
					pt, perr := typeByID(p)
					if perr != nil {
						return nil, nil, perr
					}
					t.Params = append(t.Params, pt)
				}
			}
		default:
			return nil, nil, fmt.Errorf("progfile: type %q: unknown kind %q", tr.ID, tr.Kind)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("progfile: type %q: %w", tr.ID, err)
		}
		typeList = append(typeList, t)
	}

	globals := make(map[string]*program.Global, len(f.Globals))
	for _, gr := range f.Globals {
		addr, err := program.ParseAddress(gr.Addr)
		if err != nil {
			return nil, nil, fmt.Errorf("progfile: global %q: %w", gr.Name, err)
		}
		gt, err := typeByID(gr.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("progfile: global %q: %w", gr.Name, err)
		}
		globals[gr.ID] = &program.Global{
			Name:           gr.Name,
			Addr:           addr,
			Type:           gt,
			FunctionSymbol: gr.FunctionSymbol,
		}
	}

	// Functions in two passes for thunk targets and callees.
	funcs := make(map[program.Address]*program.Function, len(f.Functions))
	var funcList []*program.Function
	for _, fr := range f.Functions {
		addr, err := program.ParseAddress(fr.Addr)
		if err != nil {
			return nil, nil, fmt.Errorf("progfile: function %q: %w", fr.Name, err)
		}
		if _, dup := funcs[addr]; dup {
			return nil, nil, fmt.Errorf("progfile: duplicate function address %s", addr)
		}
		fn := &program.Function{
			Entry:     addr,
			Name:      fr.Name,
			Tags:      fr.Tags,
			External:  fr.External,
			Prototype: fr.Prototype,
		}
		if fn.Return, err = typeByID(fr.Return); err != nil {
			return nil, nil, fmt.Errorf("progfile: function %q: %w", fr.Name, err)
		}
		for _, p := range fr.Params {
			pt, perr := typeByID(p)
			if perr != nil {
				return nil, nil, fmt.Errorf("progfile: function %q: %w", fr.Name, perr)
			}
			fn.Params = append(fn.Params, pt)
		}
		funcs[addr] = fn
		funcList = append(funcList, fn)
	}

	dec := &Decompiler{results: make(map[*program.Function]*program.DecompileResult)}
	for i, fr := range f.Functions {
		fn := funcList[i]
		if fr.ThunkOf != "" {
			taddr, err := program.ParseAddress(fr.ThunkOf)
			if err != nil {
				return nil, nil, fmt.Errorf("progfile: function %q thunk_of: %w", fr.Name, err)
			}
			target, ok := funcs[taddr]
			if !ok {
				return nil, nil, fmt.Errorf("progfile: function %q: thunk target %s not found", fr.Name, taddr)
			}
			fn.ThunkTarget = target
		}
		if fr.Decompile == nil {
			continue
		}
		res := &program.DecompileResult{
			ErrorMessage: fr.Decompile.Error,
			Signature:    fr.Decompile.Signature,
			Body:         fr.Decompile.Body,
		}
		for _, gid := range fr.Decompile.Globals {
			g, ok := globals[gid]
			if !ok {
				return nil, nil, fmt.Errorf("progfile: function %q: unknown global id %q", fr.Name, gid)
			}
			res.Globals = append(res.Globals, g)
		}
		for _, ca := range fr.Decompile.Callees {
			caddr, err := program.ParseAddress(ca)
			if err != nil {
				return nil, nil, fmt.Errorf("progfile: function %q callee: %w", fr.Name, err)
			}
			callee, ok := funcs[caddr]
			if !ok {
				return nil, nil, fmt.Errorf("progfile: function %q: callee %s not found", fr.Name, caddr)
			}
			res.Callees = append(res.Callees, callee)
		}
		for _, tid := range fr.Decompile.MarkupTypes {
			mt, err := typeByID(tid)
			if err != nil {
				return nil, nil, fmt.Errorf("progfile: function %q: %w", fr.Name, err)
			}
			if mt != nil {
				res.MarkupTypes = append(res.MarkupTypes, mt)
			}
		}
		dec.results[fn] = res
	}

	var equates []program.Equate
	for _, e := range f.Equates {
		equates = append(equates, program.Equate{Name: e.Name, Value: e.Value})
	}

	return program.New(f.Name, funcList, typeList, equates), dec, nil
}
