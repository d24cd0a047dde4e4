//go:build cgo

package native

/*
#include <math.h>
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

// Implemented in Go, see exports.go.
extern float evalStepTrack(float*, float*, int, float);
extern float evalHermiteTrack(float*, float*, int, float);
extern float evalWeightedHermiteTrack(float*, float*, int, float);
extern float evalBezierTrack(float*, float*, int, float);
extern float evalWeightedBezierTrack(float*, float*, int, float);
extern float evalCatmullRomTrack(float*, float);
extern float evalStepTrack16(uint16_t*, uint16_t*, int, float);
extern float evalBezierTrack16(uint16_t*, uint16_t*, int, float);
extern float evalWeightedBezierTrack16(uint16_t*, uint16_t*, int, float);
extern float evalCatmullRomTrack16(uint16_t*, float);

#if defined(_WIN64)
extern void ___chkstk_ms(void);
#define STACK_PROBE ___chkstk_ms
#elif defined(_WIN32)
extern void __chkstk(void);
#define STACK_PROBE __chkstk
#endif

typedef struct {
	const char* name;
	void (*addr)(void);
} host_symbol;

#define HOST(f) { #f, (void (*)(void))&f }

static const host_symbol host_symbols[] = {
	HOST(acosf),
	HOST(asinf),
	HOST(atan2f),
	HOST(atanf),
	HOST(ceilf),
	HOST(cosf),
	HOST(expf),
	HOST(fabsf),
	HOST(floorf),
	HOST(fmodf),
	HOST(log10f),
	HOST(logf),
	HOST(powf),
	HOST(roundf),
	HOST(sinf),
	HOST(sqrtf),
	HOST(tanf),
	HOST(cos),
	HOST(exp),
	HOST(floor),
	HOST(fmod),
	HOST(log),
	HOST(pow),
	HOST(sin),
	HOST(sqrt),
	HOST(calloc),
	HOST(free),
	HOST(malloc),
	HOST(memcpy),
	HOST(memmove),
	HOST(memset),
	HOST(realloc),
	HOST(evalStepTrack),
	HOST(evalHermiteTrack),
	HOST(evalWeightedHermiteTrack),
	HOST(evalBezierTrack),
	HOST(evalWeightedBezierTrack),
	HOST(evalCatmullRomTrack),
	HOST(evalStepTrack16),
	HOST(evalBezierTrack16),
	HOST(evalWeightedBezierTrack16),
	HOST(evalCatmullRomTrack16),
};

static int host_symbol_count(void) {
	return (int)(sizeof(host_symbols) / sizeof(host_symbols[0]));
}

static const char* host_symbol_name(int i) {
	return host_symbols[i].name;
}

static uintptr_t host_symbol_addr(int i) {
	return (uintptr_t)host_symbols[i].addr;
}

static uintptr_t host_stack_probe(void) {
#ifdef STACK_PROBE
	return (uintptr_t)&STACK_PROBE;
#else
	return 0;
#endif
}
*/
import "C"

import (
	"github.com/wippyai/scene-runtime/symbols"
)

// HostSymbols returns the C library functions and track evaluators
// compiled assets may import, in no particular order.
func HostSymbols() []symbols.Symbol {
	n := int(C.host_symbol_count())
	syms := make([]symbols.Symbol, 0, n)
	for i := 0; i < n; i++ {
		syms = append(syms, symbols.Symbol{
			Name: C.GoString(C.host_symbol_name(C.int(i))),
			Addr: uintptr(C.host_symbol_addr(C.int(i))),
		})
	}
	return syms
}

// HostStackProbe returns the address of the platform stack probe, or 0
// on hosts that have none.
func HostStackProbe() uintptr {
	return uintptr(C.host_stack_probe())
}

// HostTable builds a symbol table from the host symbols plus extra, which
// usually holds the GL entry points. Extra symbols override host symbols
// of the same name.
func HostTable(extra ...symbols.Symbol) *symbols.Table {
	var b symbols.Builder
	return b.AddAll(HostSymbols()).AddAll(extra).StackProbe(HostStackProbe()).Build()
}
