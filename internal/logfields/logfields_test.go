package logfields

import (
	"errors"
	"testing"
)

func TestError_Nil(t *testing.T) {
	a := Error(nil)
	if a.Key != KeyError || a.Value.String() != "" {
		t.Fatalf("got %v", a)
	}
}

func TestError_Message(t *testing.T) {
	a := Error(errors.New("boom"))
	if a.Value.String() != "boom" {
		t.Fatalf("got %v", a)
	}
}

func TestStage(t *testing.T) {
	a := Stage("compile")
	if a.Key != KeyStage || a.Value.String() != "compile" {
		t.Fatalf("got %v", a)
	}
}
