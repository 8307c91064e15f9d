package collate

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"cexport/internal/program"
)

// resolved caches the outcome of one callee resolution.
type resolved struct {
	sig     string // rendered prototype with semicolon; "" when resolution failed
	callees []*program.Function
}

// Resolver produces declaration signatures for referenced functions.
// Thunks resolve to their target's signature, externals use the
// platform's raw prototype, everything else is decompiled on demand.
// Results are cached by effective entry address because the same
// callee is typically referenced from many artifacts.
type Resolver struct {
	dec     program.Decompiler
	timeout time.Duration
	cache   *lru.Cache[program.Address, resolved]
}

const resolverCacheSize = 4096

// NewResolver builds a resolver over an open decompiler session.
func NewResolver(dec program.Decompiler, timeout time.Duration) *Resolver {
	cache, err := lru.New[program.Address, resolved](resolverCacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	return &Resolver{dec: dec, timeout: timeout, cache: cache}
}

// Signature returns the declaration text for fn, resolving thunks
// first. ok is false when no signature could be produced; callers
// substitute a visible placeholder instead of dropping the reference.
func (r *Resolver) Signature(ctx context.Context, fn *program.Function) (sig string, ok bool) {
	res := r.resolve(ctx, fn)
	return res.sig, res.sig != ""
}

// Callees returns the functions called by fn, as reported by the
// decompiler for the effective (post-thunk) target.
func (r *Resolver) Callees(ctx context.Context, fn *program.Function) []*program.Function {
	return r.resolve(ctx, fn).callees
}

func (r *Resolver) resolve(ctx context.Context, fn *program.Function) resolved {
	target := fn
	if fn.ThunkTarget != nil {
		target = fn.ThunkTarget
		log.Info("thunk resolved for signature", "thunk", fn.Name, "target", target.Name)
	}

	if res, hit := r.cache.Get(target.Entry); hit {
		return res
	}

	res := r.resolveTarget(ctx, target)
	r.cache.Add(target.Entry, res)
	return res
}

func (r *Resolver) resolveTarget(ctx context.Context, fn *program.Function) resolved {
	if fn.External {
		// The platform's prototype for an import is authoritative;
		// re-decompiling an external stub yields nothing better.
		if fn.Prototype != "" {
			return resolved{sig: withSemicolon(fn.Prototype)}
		}
		return resolved{}
	}

	dr, err := r.dec.Decompile(ctx, fn, r.timeout)
	if err != nil {
		log.Warn("callee decompile failed", "func", fn.Name, "addr", fn.Entry, "err", err)
		return resolved{}
	}
	if dr.ErrorMessage != "" || dr.Signature == "" {
		log.Warn("no signature for callee", "func", fn.Name, "addr", fn.Entry, "msg", dr.ErrorMessage)
		return resolved{callees: dr.Callees}
	}
	return resolved{sig: withSemicolon(dr.Signature), callees: dr.Callees}
}

func withSemicolon(sig string) string {
	if len(sig) > 0 && sig[len(sig)-1] == ';' {
		return sig
	}
	return sig + ";"
}
