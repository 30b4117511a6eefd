// Package observability exposes the codec metric hooks. The codecs stay pure
// string transforms; they only report counts through the package observer,
// which defaults to a no-op until a process opts in (see the prom subpackage).
package observability

import (
	"sync"
	"sync/atomic"

	"github.com/tomca32/uule-converter/uuleerrors"
)

// Format identifies which UULE codec produced an event.
type Format string

const (
	FormatV1 Format = "uulev1"
	FormatV2 Format = "uulev2"
)

// CodecObserver receives codec-level metric events.
type CodecObserver interface {
	Encode(format Format)
	Decode(format Format, result uuleerrors.Code)
}

type noopCodecObserver struct{}

func (noopCodecObserver) Encode(Format)                  {}
func (noopCodecObserver) Decode(Format, uuleerrors.Code) {}

// NoopCodecObserver is a zero-cost observer used when metrics are disabled.
var NoopCodecObserver CodecObserver = noopCodecObserver{}

// AtomicCodecObserver swaps its delegate at runtime.
type AtomicCodecObserver struct {
	once sync.Once
	v    atomic.Value
}

type codecObserverHolder struct {
	obs CodecObserver
}

// NewAtomicCodecObserver returns an initialized atomic observer.
func NewAtomicCodecObserver() *AtomicCodecObserver {
	a := &AtomicCodecObserver{}
	a.once.Do(func() { a.v.Store(&codecObserverHolder{obs: NoopCodecObserver}) })
	return a
}

// Set replaces the delegate, falling back to the no-op observer on nil.
func (a *AtomicCodecObserver) Set(obs CodecObserver) {
	if obs == nil {
		obs = NoopCodecObserver
	}
	a.once.Do(func() { a.v.Store(&codecObserverHolder{obs: NoopCodecObserver}) })
	a.v.Store(&codecObserverHolder{obs: obs})
}

func (a *AtomicCodecObserver) load() CodecObserver {
	a.once.Do(func() { a.v.Store(&codecObserverHolder{obs: NoopCodecObserver}) })
	return a.v.Load().(*codecObserverHolder).obs
}

func (a *AtomicCodecObserver) Encode(format Format) { a.load().Encode(format) }
func (a *AtomicCodecObserver) Decode(format Format, result uuleerrors.Code) {
	a.load().Decode(format, result)
}

// Codec is the observer the uulev1 and uulev2 packages report to.
var Codec = NewAtomicCodecObserver()
