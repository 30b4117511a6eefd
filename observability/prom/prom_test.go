package prom_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomca32/uule-converter/observability"
	"github.com/tomca32/uule-converter/observability/prom"
	"github.com/tomca32/uule-converter/uuleerrors"
)

func TestCodecObserverCounts(t *testing.T) {
	reg := prom.NewRegistry()
	obs := prom.NewCodecObserver(reg)

	obs.Encode(observability.FormatV1)
	obs.Encode(observability.FormatV1)
	obs.Decode(observability.FormatV2, uuleerrors.CodeOK)
	obs.Decode(observability.FormatV2, uuleerrors.CodeInvalidBase64)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	got := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, l := range m.GetLabel() {
				key += "," + l.GetName() + "=" + l.GetValue()
			}
			got[key] = m.GetCounter().GetValue()
		}
	}

	want := map[string]float64{
		"uule_encode_total,format=uulev1":                       2,
		"uule_decode_total,format=uulev2,result=ok":             1,
		"uule_decode_total,format=uulev2,result=invalid_base64": 1,
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("metric %s = %v, want %v (all: %v)", k, got[k], v, got)
		}
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	obs := prom.NewCodecObserver(reg)
	obs.Encode(observability.FormatV2)

	rec := httptest.NewRecorder()
	prom.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "uule_encode_total") {
		t.Fatalf("metrics output missing uule_encode_total:\n%s", rec.Body.String())
	}
}
