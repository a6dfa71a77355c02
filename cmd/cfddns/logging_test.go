package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestFindFlag(t *testing.T) {
	parent := &cobra.Command{Use: "parent"}
	parent.Flags().String("log-format", "human", "")
	child := &cobra.Command{Use: "child"}
	parent.AddCommand(child)

	if f := findFlag(child, "log-format"); f == nil {
		t.Fatal("flag on parent not found from child")
	}
	if f := findFlag(parent, "log-format"); f == nil {
		t.Fatal("flag not found on its own command")
	}
	if f := findFlag(child, "no-such-flag"); f != nil {
		t.Fatalf("unexpected flag found: %v", f)
	}
}
