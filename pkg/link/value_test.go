package link

import (
	"testing"
)

func TestOf(t *testing.T) {
	s := "x"
	tests := []struct {
		name string
		in   any
		want ValueKind
	}{
		{"nil", nil, KindNone},
		{"string", "hello", KindScalar},
		{"int", 7, KindScalar},
		{"bool", true, KindScalar},
		{"string slice", []string{"a", "b"}, KindList},
		{"pointer slice", []*string{&s, nil}, KindList},
		{"any slice", []any{"a", 2, nil}, KindList},
		{"int slice", []int{1, 2}, KindList},
		{"array", [2]string{"a", "b"}, KindList},
		{"value passthrough", Scalar("v"), KindScalar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.in).Kind(); got != tt.want {
				t.Errorf("Of(%v).Kind() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOfListElements(t *testing.T) {
	v := Of([]any{"a", nil, 3})
	if len(v.list) != 3 {
		t.Fatalf("len = %d, want 3", len(v.list))
	}
	if v.list[0] == nil || *v.list[0] != "a" {
		t.Errorf("elem 0 = %v, want a", v.list[0])
	}
	if v.list[1] != nil {
		t.Errorf("elem 1 = %q, want absent", *v.list[1])
	}
	if v.list[2] == nil || *v.list[2] != "3" {
		t.Errorf("elem 2 = %v, want 3", v.list[2])
	}
}

func TestStringsCopiesElements(t *testing.T) {
	src := []string{"a", "b"}
	v := Strings(src...)
	src[0] = "changed"
	if *v.list[0] != "a" {
		t.Errorf("elem 0 = %q, want a", *v.list[0])
	}
}
