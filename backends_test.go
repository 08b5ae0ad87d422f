/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package firefish

import (
	"testing"

	"github.com/SchwabischesBauernbrot/firefish/feedstore/mock"
)

func TestBackendsRegisterAndSelect(t *testing.T) {
	backends := NewBackends()

	store := mock.NewFeedStore()
	if err := backends.Register(store); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	selected, err := backends.Select("mock")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if selected.Kind() != "mock" {
		t.Errorf("Expected kind %q, got %q", "mock", selected.Kind())
	}
}

func TestBackendsDuplicateRegistration(t *testing.T) {
	backends := NewBackends()

	if err := backends.Register(mock.NewFeedStore()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := backends.Register(mock.NewFeedStore()); err == nil {
		t.Error("Expected error registering duplicate backend")
	}
}

func TestBackendsSelectUnknown(t *testing.T) {
	backends := NewBackends()

	if _, err := backends.Select("dynamodb"); err == nil {
		t.Error("Expected error selecting unregistered backend")
	}
}

func TestBackendsList(t *testing.T) {
	backends := NewBackends()
	if err := backends.Register(mock.NewFeedStore()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	kinds := backends.List()
	if len(kinds) != 1 || kinds[0] != "mock" {
		t.Errorf("Expected [mock], got %v", kinds)
	}
}
