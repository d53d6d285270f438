package viewkit

import (
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/viewkit-dev/viewkit/internal/errors"
	"github.com/viewkit-dev/viewkit/pkg/view"
)

type stubAppTool struct {
	conf Config
}

func (s *stubAppTool) Configure(conf Config) error {
	s.conf = conf
	return nil
}

type stubRequestTool struct{}

func (stubRequestTool) ForRequest(vc *view.Context) (any, error) {
	return vc.RequestPath(), nil
}

func TestToolboxRegister(t *testing.T) {
	b := NewToolbox()
	if err := b.Register("a", &stubAppTool{}, ScopeApplication); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := b.Register("a", &stubAppTool{}, ScopeApplication)
	if !errors.New("T001").Is(err) {
		t.Errorf("duplicate Register err = %v, want T001", err)
	}
}

func TestToolboxKeys(t *testing.T) {
	b := NewToolbox()
	for _, key := range []string{"zeta", "alpha", "mid"} {
		if err := b.Register(key, &stubAppTool{}, ScopeApplication); err != nil {
			t.Fatalf("Register(%s): %v", key, err)
		}
	}
	want := []string{"alpha", "mid", "zeta"}
	if got := b.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestToolboxConfigure(t *testing.T) {
	tool := &stubAppTool{}
	b := NewToolbox()
	if err := b.Register("a", tool, ScopeApplication); err != nil {
		t.Fatalf("Register: %v", err)
	}

	conf := map[string]Config{"a": {"opt": true}}
	if err := b.Configure(conf); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got := tool.conf.Bool("opt", false); !got {
		t.Error("option not delivered to tool")
	}

	err := b.Configure(map[string]Config{"missing": {}})
	if !errors.New("T002").Is(err) {
		t.Errorf("Configure(unknown) err = %v, want T002", err)
	}
}

func TestToolboxScopeFor(t *testing.T) {
	app := &stubAppTool{}
	b := NewToolbox()
	if err := b.Register("app", app, ScopeApplication); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := b.Register("req", stubRequestTool{}, ScopeRequest); err != nil {
		t.Fatalf("Register: %v", err)
	}

	vc := view.NewContext(httptest.NewRequest("GET", "http://h/page", nil))
	scope, err := b.ScopeFor(vc)
	if err != nil {
		t.Fatalf("ScopeFor: %v", err)
	}
	if scope["app"] != app {
		t.Error("application tool not shared as-is")
	}
	if got := scope["req"]; got != "/page" {
		t.Errorf("request tool value = %v, want /page", got)
	}
}

func TestToolboxScopeForNilContext(t *testing.T) {
	b := NewToolbox()
	if err := b.Register("req", stubRequestTool{}, ScopeRequest); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := b.ScopeFor(nil)
	if !errors.New("T003").Is(err) {
		t.Errorf("ScopeFor(nil) err = %v, want T003", err)
	}
}
