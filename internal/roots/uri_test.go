package roots

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseRootURI(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
		ok   bool
	}{
		{"file URI", "file:///home/user/projects", filepath.FromSlash("/home/user/projects"), true},
		{"file URI with localhost", "file://localhost/srv/data", filepath.FromSlash("/srv/data"), true},
		{"plain path", "/srv/data", filepath.FromSlash("/srv/data"), true},
		{"trailing slash", "file:///srv/data/", filepath.FromSlash("/srv/data"), true},
		{"http scheme", "http://example.com/data", "", false},
		{"custom scheme", "s3://bucket/key", "", false},
		{"bare file scheme", "file://", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRootURI(tt.uri)
			if ok != tt.ok {
				t.Fatalf("ParseRootURI(%q) ok = %v, want %v", tt.uri, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseRootURI(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

func TestCandidatesFromURIsSkipsInvalid(t *testing.T) {
	uris := []string{
		"file:///srv/data",
		"http://example.com/nope",
		"file:///srv/docs",
		"",
	}
	want := []string{
		filepath.FromSlash("/srv/data"),
		filepath.FromSlash("/srv/docs"),
	}
	if got := CandidatesFromURIs(uris); !reflect.DeepEqual(got, want) {
		t.Errorf("CandidatesFromURIs = %v, want %v", got, want)
	}
}
