package link

import (
	"testing"

	"github.com/viewkit-dev/viewkit"
)

func TestToolConfigure(t *testing.T) {
	tool := NewTool()
	err := tool.Configure(viewkit.Config{
		SelfAbsoluteKey:          true,
		SelfIncludeParametersKey: "true",
		AutoIgnoreParametersKey:  false,
		XHTMLKey:                 true,
	})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	vc := testContext(t, "http://myserver.net/app/view?a=1")
	l := tool.NewLink(vc)

	if l.delim != XHTMLDelimiter {
		t.Errorf("delim = %q, want %q", l.delim, XHTMLDelimiter)
	}
	if l.autoIgnore {
		t.Error("autoIgnore still enabled")
	}
	if !l.selfAbsolute || !l.selfParams {
		t.Errorf("self config = (%v, %v), want (true, true)", l.selfAbsolute, l.selfParams)
	}
}

func TestToolForRequest(t *testing.T) {
	tool := NewTool()

	if _, err := tool.ForRequest(nil); err == nil {
		t.Error("ForRequest(nil) did not fail")
	}

	v, err := tool.ForRequest(testContext(t, "http://myserver.net/view"))
	if err != nil {
		t.Fatalf("ForRequest: %v", err)
	}
	if _, ok := v.(*Link); !ok {
		t.Errorf("ForRequest returned %T, want *Link", v)
	}
}
