package updater

import "testing"

func TestIsUpdateAvailable(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
		wantErr bool
	}{
		{"newer patch", "1.0.0", "1.0.1", true, false},
		{"newer minor", "1.1.0", "1.2.0", true, false},
		{"same version", "1.2.0", "1.2.0", false, false},
		{"current ahead", "2.0.0", "1.9.9", false, false},
		{"v prefixes tolerated", "v1.0.0", "v1.1.0", true, false},
		{"mixed prefixes", "1.0.0", "v1.0.1", true, false},
		{"garbage current", "dev", "1.0.0", false, true},
		{"garbage latest", "1.0.0", "latest", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsUpdateAvailable(tt.current, tt.latest)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsUpdateAvailable(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}
