package router

import (
	"errors"
	"testing"
)

// TestArgumentsCoercion tests that captured segments are coerced to
// their placeholder types in declaration order.
func TestArgumentsCoercion(t *testing.T) {
	table := NewRouteTable(nil)
	template := "/users/<string:user>/items/<int:id>/score/<float:score>/obj/<uuid:obj>"
	if err := table.Register(template, okHandler, nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	path := "/users/remotepixel/items/42/score/12.5/obj/6f3a1b2c-4d5e-4f60-8a9b-0c1d2e3f4a5b"
	entry, ok := table.Resolve(path)
	if !ok {
		t.Fatal("Expected path to resolve")
	}

	args, err := entry.Arguments(path)
	if err != nil {
		t.Fatalf("Arguments failed: %v", err)
	}
	if len(args) != 4 {
		t.Fatalf("Expected 4 arguments, got %d", len(args))
	}

	if user, ok := args[0].(string); !ok || user != "remotepixel" {
		t.Errorf("Expected args[0] == \"remotepixel\" (string), got %v (%T)", args[0], args[0])
	}
	if id, ok := args[1].(int); !ok || id != 42 {
		t.Errorf("Expected args[1] == 42 (int), got %v (%T)", args[1], args[1])
	}
	if score, ok := args[2].(float64); !ok || score != 12.5 {
		t.Errorf("Expected args[2] == 12.5 (float64), got %v (%T)", args[2], args[2])
	}
	if obj, ok := args[3].(string); !ok || obj != "6f3a1b2c-4d5e-4f60-8a9b-0c1d2e3f4a5b" {
		t.Errorf("Expected args[3] to pass through verbatim, got %v (%T)", args[3], args[3])
	}
}

// TestArgumentsOverflow tests that an integer segment too large for the
// platform int fails with ConversionError rather than silently
// truncating.
func TestArgumentsOverflow(t *testing.T) {
	table := NewRouteTable(nil)
	if err := table.Register("/items/<int:id>", okHandler, nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	path := "/items/99999999999999999999999999999999"
	entry, ok := table.Resolve(path)
	if !ok {
		t.Fatal("Expected path to resolve")
	}

	_, err := entry.Arguments(path)
	if err == nil {
		t.Fatal("Expected conversion error for oversized integer")
	}
	var conv *ConversionError
	if !errors.As(err, &conv) {
		t.Fatalf("Expected *ConversionError, got %T", err)
	}
}

// TestArgumentsNoPlaceholders tests that a literal route yields no
// positional arguments.
func TestArgumentsNoPlaceholders(t *testing.T) {
	table := NewRouteTable(nil)
	if err := table.Register("/json", okHandler, nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	entry, _ := table.Resolve("/json")
	args, err := entry.Arguments("/json")
	if err != nil {
		t.Fatalf("Arguments failed: %v", err)
	}
	if len(args) != 0 {
		t.Errorf("Expected no arguments, got %d", len(args))
	}
}
