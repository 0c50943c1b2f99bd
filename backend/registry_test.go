package backend

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegistry_NewByKind(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterFactory("stub", func(model string) (Client, error) {
		return &stubClient{}, nil
	})

	c, err := registry.New("stub", "any-model")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Kind() != "stub" {
		t.Errorf("Kind() = %q, want %q", c.Kind(), "stub")
	}
}

func TestRegistry_UnknownKind(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.New("nonexistent", "m")
	if !errors.Is(err, ErrKindNotFound) {
		t.Errorf("New() error = %v, want ErrKindNotFound", err)
	}
}

func TestRegistry_IgnoresInvalidRegistrations(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterFactory("", func(string) (Client, error) { return nil, nil })
	registry.RegisterFactory("nilfactory", nil)

	if kinds := registry.Kinds(); len(kinds) != 0 {
		t.Errorf("Kinds() = %v, want empty", kinds)
	}
}

func TestRegistry_KindsSorted(t *testing.T) {
	registry := NewRegistry()
	factory := func(string) (Client, error) { return &stubClient{}, nil }
	registry.RegisterFactory("scripted", factory)
	registry.RegisterFactory("gemini", factory)

	got := registry.Kinds()
	want := []string{"gemini", "scripted"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Kinds() = %v, want %v", got, want)
	}
}
