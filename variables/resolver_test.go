package variables

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestResolveSimpleSubstitution(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{
		"rule":    "Host(`~##domain##~`)",
		"service": "~##serviceName##~",
	}
	ctx := Context{"domain": "api.example.com", "serviceName": "api-service"}

	out, err := r.Resolve(doc, ctx, Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	got := out.(map[string]any)
	if got["rule"] != "Host(`api.example.com`)" {
		t.Errorf("rule = %v", got["rule"])
	}
	if got["service"] != "api-service" {
		t.Errorf("service = %v", got["service"])
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{"service": "~##name##~"}

	if _, err := r.Resolve(doc, Context{"name": "svc"}, Options{}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if doc["service"] != "~##name##~" {
		t.Errorf("input mutated: %v", doc["service"])
	}
}

func TestResolveIdempotentOnConcreteDocument(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{
		"rule":     "Host(`api.example.com`)",
		"priority": float64(5),
		"servers":  []any{map[string]any{"url": "http://10.0.0.1:8080"}},
	}

	out, err := r.Resolve(doc, Context{"unrelated": "x"}, Options{Strict: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(out, doc) {
		t.Errorf("resolved concrete document differs:\n got %+v\nwant %+v", out, doc)
	}
}

// A numeric value substituted into a string position is stringified,
// even when the string is exactly one bare token.
func TestResolveNumberStringified(t *testing.T) {
	r := NewResolver(nil)

	t.Run("bare token", func(t *testing.T) {
		doc := map[string]any{"average": "~##rateLimit##~"}
		out, err := r.Resolve(doc, Context{"rateLimit": 100}, Options{Strict: true})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		got := out.(map[string]any)["average"]
		if got != "100" {
			t.Errorf("average = %#v, want the string \"100\"", got)
		}
	})

	t.Run("embedded token", func(t *testing.T) {
		doc := map[string]any{"limit": "max ~##rateLimit##~ rps"}
		out, err := r.Resolve(doc, Context{"rateLimit": 100}, Options{Strict: true})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if got := out.(map[string]any)["limit"]; got != "max 100 rps" {
			t.Errorf("limit = %#v", got)
		}
	})

	t.Run("float without trailing zeroes", func(t *testing.T) {
		doc := map[string]any{"v": "~##n##~"}
		out, err := r.Resolve(doc, Context{"n": float64(100)}, Options{Strict: true})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if got := out.(map[string]any)["v"]; got != "100" {
			t.Errorf("v = %#v, want \"100\"", got)
		}
	})
}

func TestResolveBooleanStringified(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{"flag": "enabled=~##on##~", "bare": "~##on##~"}
	out, err := r.Resolve(doc, Context{"on": true}, Options{Strict: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	got := out.(map[string]any)
	if got["flag"] != "enabled=true" {
		t.Errorf("flag = %#v", got["flag"])
	}
	if got["bare"] != "true" {
		t.Errorf("bare = %#v", got["bare"])
	}
}

// Arrays and objects keep their type when substituted as a bare token.
func TestResolveStructuredValuesPreserveType(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{
		"entryPoints": "~##entries##~",
		"extra":       "~##meta##~",
	}
	ctx := Context{
		"entries": []any{"web", "websecure"},
		"meta":    map[string]any{"team": "platform"},
	}

	out, err := r.Resolve(doc, ctx, Options{Strict: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	got := out.(map[string]any)
	if !reflect.DeepEqual(got["entryPoints"], []any{"web", "websecure"}) {
		t.Errorf("entryPoints = %#v", got["entryPoints"])
	}
	if !reflect.DeepEqual(got["extra"], map[string]any{"team": "platform"}) {
		t.Errorf("extra = %#v", got["extra"])
	}
}

func TestResolveLenientKeepsToken(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{"service": "~##missing##~"}

	out, err := r.Resolve(doc, Context{}, Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := out.(map[string]any)["service"]; got != "~##missing##~" {
		t.Errorf("service = %v, want the literal token", got)
	}
}

func TestResolveStrictFailureNamesVariable(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{"service": "~##missing##~"}

	_, err := r.Resolve(doc, Context{}, Options{Strict: true})
	if err == nil {
		t.Fatal("expected strict failure")
	}
	var resErr *ResolveError
	if !errors.As(err, &resErr) {
		t.Fatalf("error type = %T", err)
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error %q does not name the variable", err)
	}
}

func TestResolveStrictAggregatesAllMissing(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{
		"a": "~##first##~",
		"b": []any{"~##second##~", "x ~##third##~ y"},
	}

	_, err := r.Resolve(doc, Context{}, Options{Strict: true})
	var resErr *ResolveError
	if !errors.As(err, &resErr) {
		t.Fatalf("error type = %T", err)
	}
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(resErr.Unresolved, want) {
		t.Errorf("Unresolved = %v, want %v", resErr.Unresolved, want)
	}
}

func TestResolveRecursiveVariables(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{"url": "~##backendURL##~"}
	ctx := Context{
		"backendURL": "~##scheme##~://~##host##~:8080",
		"scheme":     "http",
		"host":       "10.0.0.5",
	}

	out, err := r.Resolve(doc, ctx, Options{Strict: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := out.(map[string]any)["url"]; got != "http://10.0.0.5:8080" {
		t.Errorf("url = %v", got)
	}
}

func TestResolveCycleDetected(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{"v": "~##a##~"}
	ctx := Context{
		"a": "~##b##~",
		"b": "~##a##~",
	}

	_, err := r.Resolve(doc, ctx, Options{})
	if err == nil {
		t.Fatal("expected a cycle error")
	}
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("error type = %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "a") || !strings.Contains(err.Error(), "b") {
		t.Errorf("cycle error %q does not name the chain", err)
	}
}

func TestResolveSelfReferenceDetected(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{"v": "~##a##~"}

	_, err := r.Resolve(doc, Context{"a": "loop ~##a##~"}, Options{})
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("error type = %T: %v", err, err)
	}
}

func TestResolveMaxDepthExceeded(t *testing.T) {
	r := NewResolver(nil)
	ctx := Context{}
	// v0 -> v1 -> ... -> v12, deeper than the limit but with no cycle.
	for i := 0; i < 12; i++ {
		ctx[key(i)] = "~##" + key(i+1) + "##~ deep"
	}
	ctx[key(12)] = "bottom"
	doc := map[string]any{"v": "~##" + key(0) + "##~"}

	_, err := r.Resolve(doc, ctx, Options{})
	var resErr *ResolveError
	if !errors.As(err, &resErr) {
		t.Fatalf("error type = %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "depth") {
		t.Errorf("error %q should mention depth", err)
	}
}

func key(i int) string {
	return "v" + string(rune('a'+i))
}

func TestResolveTransformsApplied(t *testing.T) {
	reg := NewRegistry()
	reg.Register(String("domain").Transform(func(v any) any {
		return strings.ToLower(v.(string))
	}))
	r := NewResolver(reg)

	doc := map[string]any{"rule": "Host(`~##domain##~`)"}
	out, err := r.Resolve(doc, Context{"domain": "API.Example.COM"}, Options{Strict: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := out.(map[string]any)["rule"]; got != "Host(`api.example.com`)" {
		t.Errorf("rule = %v", got)
	}
}

func TestPreviewDocument(t *testing.T) {
	r := NewResolver(nil)
	doc := map[string]any{
		"rule":    "Host(`~##domain##~`)",
		"service": "~##serviceName##~",
	}

	report := r.PreviewDocument(doc, Context{"domain": "api.example.com"})
	if !reflect.DeepEqual(report.Found, []string{"domain"}) {
		t.Errorf("Found = %v", report.Found)
	}
	if !reflect.DeepEqual(report.Missing, []string{"serviceName"}) {
		t.Errorf("Missing = %v", report.Missing)
	}
	if report.Total < 2 {
		t.Errorf("Total = %d, want >= 2", report.Total)
	}
}

func TestPreviewCountsRegistryDefaults(t *testing.T) {
	reg := NewRegistry()
	reg.Register(String("scheme").Default("https"))
	r := NewResolver(reg)

	doc := map[string]any{"redirect": "~##scheme##~://~##domain##~"}
	report := r.PreviewDocument(doc, Context{})

	if !reflect.DeepEqual(report.Found, []string{"scheme"}) {
		t.Errorf("Found = %v", report.Found)
	}
	if !reflect.DeepEqual(report.Missing, []string{"domain"}) {
		t.Errorf("Missing = %v", report.Missing)
	}
}
