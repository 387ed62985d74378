package platform

import "testing"

func TestForOS_Separators(t *testing.T) {
	tests := []struct {
		goos string
		path string
		list string
	}{
		{Linux, "/", ":"},
		{Darwin, "/", ":"},
		{Windows, `\`, ";"},
	}
	for _, tt := range tests {
		p := ForOS(tt.goos)
		if p.PathSeparator != tt.path || p.ListSeparator != tt.list {
			t.Fatalf("%s: got %q %q", tt.goos, p.PathSeparator, p.ListSeparator)
		}
	}
}

func TestJoinList(t *testing.T) {
	p := ForOS(Linux)
	got := p.JoinList("class/", "", "lib/junit.jar")
	if got != "class:lib/junit.jar" {
		t.Fatalf("got %q", got)
	}

	w := ForOS(Windows)
	got = w.JoinList("class/", "lib/junit.jar")
	if got != `class;lib\junit.jar` {
		t.Fatalf("got %q", got)
	}
}

func TestJoinList_Repeatable(t *testing.T) {
	p := ForOS(Windows)
	a := p.JoinList("class", "lib/a.jar", "lib/b.jar")
	b := p.JoinList("class", "lib/a.jar", "lib/b.jar")
	if a != b {
		t.Fatalf("%q != %q", a, b)
	}
}

func TestPath(t *testing.T) {
	if got := ForOS(Linux).Path("src", "pkg/Main.java"); got != "src/pkg/Main.java" {
		t.Fatalf("got %q", got)
	}
	if got := ForOS(Windows).Path("src", "pkg/Main.java"); got != `src\pkg\Main.java` {
		t.Fatalf("got %q", got)
	}
}
