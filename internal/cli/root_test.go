package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/.config/habitstack/habitstack.db", filepath.Join(home, ".config/habitstack/habitstack.db")},
		{"~", home},
		{"/tmp/habitstack.db", "/tmp/habitstack.db"},
		{"relative.db", "relative.db"},
	}

	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPostgres(t *testing.T) {
	tests := map[string]bool{
		"postgres://localhost/habitstack":   true,
		"postgresql://localhost/habitstack": true,
		"/var/lib/habitstack.db":            false,
		"host=localhost dbname=habitstack":  false,
	}
	for in, want := range tests {
		if got := IsPostgres(in); got != want {
			t.Errorf("IsPostgres(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConfigDir(t *testing.T) {
	got, err := ConfigDir("/data/habitstack/habitstack.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/data/habitstack" {
		t.Errorf("ConfigDir = %q, want /data/habitstack", got)
	}

	got, err = ConfigDir("postgres://localhost/habitstack")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "habitstack" {
		t.Errorf("ConfigDir for postgres = %q, want the default config dir", got)
	}
}
