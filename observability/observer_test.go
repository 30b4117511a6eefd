package observability_test

import (
	"sync/atomic"
	"testing"

	"github.com/tomca32/uule-converter/observability"
	"github.com/tomca32/uule-converter/uuleerrors"
)

type countingCodecObserver struct {
	encodes int64
	decodes int64
	lastOK  int64
}

func (c *countingCodecObserver) Encode(observability.Format) { atomic.AddInt64(&c.encodes, 1) }
func (c *countingCodecObserver) Decode(_ observability.Format, result uuleerrors.Code) {
	atomic.AddInt64(&c.decodes, 1)
	if result == uuleerrors.CodeOK {
		atomic.AddInt64(&c.lastOK, 1)
	}
}

func TestAtomicCodecObserverSwap(t *testing.T) {
	observer := &observability.AtomicCodecObserver{}
	observer.Encode(observability.FormatV1)

	counting := &countingCodecObserver{}
	observer.Set(counting)
	observer.Encode(observability.FormatV1)
	observer.Decode(observability.FormatV2, uuleerrors.CodeOK)
	observer.Decode(observability.FormatV2, uuleerrors.CodeInvalidBase64)

	if got := atomic.LoadInt64(&counting.encodes); got != 1 {
		t.Fatalf("unexpected encode count: %d", got)
	}
	if got := atomic.LoadInt64(&counting.decodes); got != 2 {
		t.Fatalf("unexpected decode count: %d", got)
	}
	if got := atomic.LoadInt64(&counting.lastOK); got != 1 {
		t.Fatalf("unexpected ok count: %d", got)
	}

	observer.Set(nil)
	observer.Encode(observability.FormatV2)
}

func TestPackageObserverDefaultsToNoop(t *testing.T) {
	// Must not panic before anything is registered.
	observability.Codec.Encode(observability.FormatV1)
	observability.Codec.Decode(observability.FormatV1, uuleerrors.CodeOK)
}
